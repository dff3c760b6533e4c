package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders numbers with English digit grouping for the detail panel
// and the legend.
var printer = message.NewPrinter(language.English)

// Display carries the pre-formatted strings for a country's detail panel so
// every client renders the same text.
type Display struct {
	TotalCases        string `json:"total_cases"`
	TotalDeaths       string `json:"total_deaths"`
	TotalVaccinations string `json:"total_vaccinations"`
	Population        string `json:"population"`
	CasesPerMillion   string `json:"cases_per_million"`
	DeathsPerMillion  string `json:"deaths_per_million"`
	VaccinationRate   string `json:"vaccination_rate"`
}

func newDisplay(s CountrySummary) Display {
	return Display{
		TotalCases:        printer.Sprintf("%.0f", s.TotalCases),
		TotalDeaths:       printer.Sprintf("%.0f", s.TotalDeaths),
		TotalVaccinations: printer.Sprintf("%.0f", s.TotalVaccinations),
		Population:        printer.Sprintf("%.0f", s.Population),
		CasesPerMillion:   printer.Sprintf("%.1f", s.CasesPerMillion),
		DeathsPerMillion:  printer.Sprintf("%.1f", s.DeathsPerMillion),
		VaccinationRate:   printer.Sprintf("%.1f%%", s.VaccinationRate),
	}
}
