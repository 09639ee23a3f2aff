// Package report writes scan results to disk for the one-shot CLI mode.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/contactkeval/option-scan/internal/scan"
	"github.com/contactkeval/option-scan/internal/strategy"
)

// WriteJSON writes the full scan response as indented JSON.
func WriteJSON(res *scan.Response, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "strategies.json"), b, 0644)
}

// WriteCSV writes one row per ranked strategy.
func WriteCSV(strategies []strategy.Strategy, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "strategies.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"id", "name", "type", "confidence", "max_profit", "max_loss", "capital_required", "probability_of_profit", "break_evens", "description", "legs_json"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, st := range strategies {
		bes := make([]string, len(st.BreakEvenPoints))
		for i, be := range st.BreakEvenPoints {
			bes[i] = fmt.Sprintf("%.2f", be)
		}
		legsJSON, err := json.Marshal(st.Legs)
		if err != nil {
			return err
		}

		row := []string{
			st.ID,
			st.Name,
			string(st.Category),
			fmt.Sprintf("%.1f", st.Confidence),
			fmt.Sprintf("%.0f", st.MaxProfit),
			fmt.Sprintf("%.0f", st.MaxLoss),
			fmt.Sprintf("%.0f", st.CapitalRequired),
			fmt.Sprintf("%.2f", st.ProbabilityOfProfit),
			strings.Join(bes, "|"),
			st.Description,
			string(legsJSON),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
