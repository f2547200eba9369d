package calc

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/daniacca/ttvsim/internal/atmos"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Tick is the outcome of one reaction tick in a report.
type Tick struct {
	Number     int              `json:"tick"`
	Suppressed bool             `json:"suppressed"`
	Reactions  []string         `json:"reactions"`
	Result     atmos.TickResult `json:"-"`
}

func newTick(number int, result atmos.TickResult) Tick {
	names := make([]string, len(result.Fired))
	for i, id := range result.Fired {
		names[i] = id.String()
	}
	return Tick{
		Number:     number,
		Suppressed: result.Suppressed,
		Reactions:  names,
		Result:     result,
	}
}

// String returns the tick summary line.
func (t Tick) String() string {
	return t.Result.String()
}

// Report is the result of one calculation.
//
// Merged is the combined tank before any reaction, Combined is the same
// mixture after the last tick.
type Report struct {
	ID        string                `json:"id"`
	Name      string                `json:"name,omitempty"`
	Cold      atmos.Snapshot        `json:"cold"`
	Hot       *atmos.Snapshot       `json:"hot,omitempty"`
	Merged    atmos.Snapshot        `json:"merged"`
	Combined  atmos.Snapshot        `json:"combined"`
	Ticks     []Tick                `json:"ticks"`
	Events    []atmos.ReactionEvent `json:"events"`
	BombRange float64               `json:"bomb_range"`
}

// Fired returns every reaction that fired at least once.
func (r *Report) Fired() atmos.ReactionSet {
	var s atmos.ReactionSet
	for _, t := range r.Ticks {
		s |= t.Result.Set()
	}
	return s
}

// ParseLocale parses a BCP 47 language tag such as "en" or "pt-BR".
func ParseLocale(locale string) (language.Tag, error) {
	if strings.TrimSpace(locale) == "" {
		return language.English, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return tag, nil
}

// RenderText writes the report in its plain text layout, with numbers
// formatted for tag.
func (r *Report) RenderText(w io.Writer, tag language.Tag) error {
	p := message.NewPrinter(tag)

	var b strings.Builder
	writeTank(&b, p, "Cold Tank", r.Cold)
	if r.Hot != nil {
		b.WriteString("\n")
		writeTank(&b, p, "Hot Tank", *r.Hot)
	}
	b.WriteString("\n")
	writeTank(&b, p, "Combined Tank", r.Combined)

	b.WriteString("\nReactions:\n")
	for _, t := range r.Ticks {
		b.WriteString("- " + t.String() + "\n")
	}

	b.WriteString("\nBomb Range:\n")
	b.WriteString(p.Sprintf("- %.2f\n", r.BombRange))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTank(b *strings.Builder, p *message.Printer, title string, s atmos.Snapshot) {
	b.WriteString(title + ":\n")
	b.WriteString("- Pressure: " + formatPressure(p, s.Pressure) + "\n")
	b.WriteString(p.Sprintf("- Temperature: %.2f K\n", s.Temperature))
	b.WriteString(p.Sprintf("- Total Moles: %.2f mols\n", s.TotalMoles))
}

// formatPressure prints kilopascals, with the SI-scaled value alongside
// once the pressure leaves the kilo range.
func formatPressure(p *message.Printer, kpa float64) string {
	out := p.Sprintf("%.2f kPa", kpa)
	value, prefix := humanize.ComputeSI(kpa * 1000)
	if kpa != 0 && prefix != "k" {
		out += p.Sprintf(" (%.2f %sPa)", value, prefix)
	}
	return out
}

// RenderJSON writes the report as indented JSON.
func (r *Report) RenderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// EncodeReportJSON encodes a report to JSON format.
func EncodeReportJSON(r *Report) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// DecodeReportJSON decodes a report from JSON format. Tick results are
// rebuilt from the reaction names.
func DecodeReportJSON(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	for i := range r.Ticks {
		t := &r.Ticks[i]
		t.Result.Suppressed = t.Suppressed
		for _, name := range t.Reactions {
			id, ok := atmos.ParseReaction(name)
			if !ok {
				return nil, fmt.Errorf("failed to decode report: unknown reaction %q in tick %d", name, t.Number)
			}
			t.Result.Fired = append(t.Result.Fired, id)
		}
	}
	return &r, nil
}
