package sweep

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"sync"

	"musweep/internal/metrics"
	"musweep/internal/pass"
)

// Fieldnames is the fixed result-store schema, one column per metric.
var Fieldnames = []string{
	"beta", "k", "tau", "alpha", "seed", "adversarial",
	"mu_planner", "mu_researcher", "mu_critic",
	"RoundsToApproval_baseline", "RoundsToApproval_influence",
	"AgreementRate_baseline", "AgreementRate_influence",
	"RevisionDepth_between_rounds",
	"PlannerResearcher_Canonical_baseline", "PlannerResearcher_Canonical_influence",
	"Planner_SelfAgreement", "Researcher_SelfAgreement",
}

// Store is the append-only CSV result store. A single mutex guards the
// read-check-append sequence so concurrent passes never interleave rows, and
// each row is written with one Write call.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the CSV file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// EnsureHeader writes the header row when the file is missing or empty.
func (s *Store) EnsureHeader() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, err := os.Stat(s.path)
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat result store: %w", err)
	}
	return s.appendRow(Fieldnames)
}

// Append serializes one record as a single CSV row and appends it.
func (s *Store) Append(record pass.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendRow(encodeRecord(record))
}

// appendRow writes an encoded row in one Write call so a crash cannot leave
// an interleaved row. Callers hold the lock.
func (s *Store) appendRow(fields []string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return fmt.Errorf("encode result row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode result row: %w", err)
	}
	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open result store: %w", err)
	}
	defer file.Close()
	if _, err := file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append result row: %w", err)
	}
	return nil
}

// DoneKeys loads the parameter tuples already recorded. Rows whose key fields
// fail to parse are skipped; a missing file means nothing is done yet.
func (s *Store) DoneKeys() (map[pass.Params]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	done := make(map[pass.Params]struct{})
	file, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return done, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open result store: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		return done, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read result header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return done, nil
		}
		if err != nil {
			// A partial trailing row from a crash is not fatal for resume.
			continue
		}
		key, ok := parseKey(row, index)
		if ok {
			done[key] = struct{}{}
		}
	}
}

func parseKey(row []string, index map[string]int) (pass.Params, bool) {
	field := func(name string) (string, bool) {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return row[i], true
	}
	var params pass.Params
	var err error
	for _, bind := range []struct {
		name string
		dst  *float64
	}{
		{"beta", &params.Beta}, {"k", &params.K}, {"tau", &params.Tau}, {"alpha", &params.Alpha},
	} {
		raw, ok := field(bind.name)
		if !ok {
			return pass.Params{}, false
		}
		if *bind.dst, err = strconv.ParseFloat(raw, 64); err != nil {
			return pass.Params{}, false
		}
	}
	rawSeed, ok := field("seed")
	if !ok {
		return pass.Params{}, false
	}
	if params.Seed, err = strconv.Atoi(rawSeed); err != nil {
		return pass.Params{}, false
	}
	rawAdv, ok := field("adversarial")
	if !ok {
		return pass.Params{}, false
	}
	adv, err := strconv.Atoi(rawAdv)
	if err != nil {
		return pass.Params{}, false
	}
	params.Adversarial = adv != 0
	return params, true
}

func encodeRecord(r pass.Record) []string {
	adversarial := "0"
	if r.Adversarial {
		adversarial = "1"
	}
	return []string{
		formatFloat(r.Beta),
		formatFloat(r.K),
		formatFloat(r.Tau),
		formatFloat(r.Alpha),
		strconv.Itoa(r.Seed),
		adversarial,
		formatRounded(r.MuPlanner, 4),
		formatRounded(r.MuResearcher, 4),
		formatRounded(r.MuCritic, 4),
		formatRounds(r.DecisionBaseline),
		formatRounds(r.DecisionInfluence),
		formatScore(r.AgreementBaseline, 4),
		formatScore(r.AgreementInfluence, 4),
		strconv.Itoa(r.RevisionDepth),
		formatScore(r.CanonicalBaseline, 3),
		formatScore(r.CanonicalInfluence, 3),
		formatScore(r.PlannerSelfAgreement, 3),
		formatScore(r.ResearcherSelfAgreement, 3),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatRounded(v float64, digits int) string {
	scale := math.Pow(10, float64(digits))
	return formatFloat(math.Round(v*scale) / scale)
}

// formatScore renders an undefined metric as an empty cell, never a 0.
func formatScore(v *float64, digits int) string {
	if v == nil {
		return ""
	}
	return formatRounded(*v, digits)
}

// formatRounds renders 1 for an approval and an empty (undefined) cell for
// anything else.
func formatRounds(decision metrics.Decision) string {
	if rounds := pass.RoundsToApproval(decision); rounds != nil {
		return strconv.Itoa(*rounds)
	}
	return ""
}
