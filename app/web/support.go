package web

import (
	"golang.org/x/text/message"
)

// Expense is one line of the running costs shown on the support page.
// A zero Amount is rendered as unbounded.
type Expense struct {
	Name        string
	Description string
	Quantity    string
	Amount      float64
}

var expenses = []Expense{
	{Name: "Hosting Riverside.fm", Description: "Piano mensile per registrazioni professionali", Quantity: "1", Amount: 29.00},
	{Name: "Abbonamento Canva", Description: "Design e grafica per contenuti social", Quantity: "1", Amount: 12.99},
	{Name: "Abbonamento CapCut", Description: "Video editing per clip e shorts", Quantity: "1", Amount: 9.99},
	{Name: "Assistente AI", Description: "Assistente AI per ricerca e contenuti", Quantity: "1", Amount: 20.00},
	{Name: "Ricarica OpenRouter", Description: "API AI per automazioni e sperimentazioni", Quantity: "1", Amount: 20.00},
	{Name: "Birre per le registrazioni", Description: "Carburante essenziale per creatività", Quantity: "∞"},
	{Name: "Tempo dedicato", Description: "Ricerca, registrazione, editing, pubblicazione", Quantity: "∞h"},
}

type expenseLine struct {
	Expense
	Price string
}

func expenseLines(p *message.Printer) ([]expenseLine, string) {
	lines := make([]expenseLine, 0, len(expenses))
	var total float64

	for _, e := range expenses {
		line := expenseLine{Expense: e, Price: "€ ∞"}
		if e.Amount > 0 {
			line.Price = formatEuro(p, e.Amount)
			total += e.Amount
		}
		lines = append(lines, line)
	}

	return lines, formatEuro(p, total)
}

func formatEuro(p *message.Printer, amount float64) string {
	return p.Sprintf("€ %.2f", amount)
}
