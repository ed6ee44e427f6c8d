package extraction

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"
	"strings"

	"hackathon-radar/pkg/domain"
)

// SystemPrompt is the fixed instruction sent with every request.
const SystemPrompt = `You extract hackathon listings from announcements.
Return ONLY one JSON object, no prose, with exactly these keys:
{"name": string, "college": string, "location": string, "start_date": string, "end_date": string, "mode": "Online" | "Offline", "confidence": "high" | "medium" | "low"}
Dates use YYYY-MM-DD. Use "" for any value the text does not state.
confidence is high only when name, dates and location are all explicit.`

// Fields is the exact key set of a conforming response.
var Fields = []string{"name", "college", "location", "start_date", "end_date", "mode", "confidence"}

// Result is the validated content of one response.
type Result struct {
	Name       string
	College    string
	Location   string
	StartDate  string
	EndDate    string
	Mode       string
	Confidence domain.Confidence
}

// Candidate converts the result into a candidate for the normalizer.
func (r Result) Candidate() domain.Candidate {
	return domain.Candidate{
		Name:       r.Name,
		College:    r.College,
		Location:   r.Location,
		Mode:       r.Mode,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Confidence: r.Confidence,
	}
}

// ParseResponse validates the message content returned by a model. The
// content must be one JSON object holding exactly Fields, each a string or
// null, with a non-empty name and confidence in high|medium|low. A single
// surrounding markdown code fence is tolerated.
func ParseResponse(content string) (Result, error) {
	body := []byte(stripFence(content))

	dec := json.NewDecoder(bytes.NewReader(body))
	var obj map[string]json.RawMessage
	if err := dec.Decode(&obj); err != nil {
		return Result{}, fail(ReasonContract, "response is not a JSON object: %w", err)
	}
	if obj == nil {
		return Result{}, fail(ReasonContract, "response is null")
	}
	if _, err := dec.Token(); err != io.EOF {
		return Result{}, fail(ReasonContract, "trailing data after JSON object")
	}

	var unknown []string
	for k := range obj {
		if !isField(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Result{}, fail(ReasonContract, "unexpected keys %v", unknown)
	}

	values := make(map[string]string, len(Fields))
	for _, k := range Fields {
		raw, ok := obj[k]
		if !ok {
			return Result{}, fail(ReasonContract, "missing key %q", k)
		}
		var v *string
		if err := json.Unmarshal(raw, &v); err != nil {
			return Result{}, fail(ReasonContract, "key %q is not a string", k)
		}
		if v != nil {
			values[k] = strings.TrimSpace(*v)
		}
	}

	if values["name"] == "" {
		return Result{}, fail(ReasonContract, "name is empty")
	}
	conf := domain.Confidence(strings.ToLower(values["confidence"]))
	if !conf.Valid() {
		return Result{}, fail(ReasonContract, "confidence %q is not high, medium or low", values["confidence"])
	}
	if m := values["mode"]; m != "" && !strings.EqualFold(m, string(domain.ModeOnline)) && !strings.EqualFold(m, string(domain.ModeOffline)) {
		return Result{}, fail(ReasonContract, "mode %q is not Online or Offline", m)
	}

	return Result{
		Name:       values["name"],
		College:    values["college"],
		Location:   values["location"],
		StartDate:  values["start_date"],
		EndDate:    values["end_date"],
		Mode:       values["mode"],
		Confidence: conf,
	}, nil
}

func isField(k string) bool {
	for _, f := range Fields {
		if f == k {
			return true
		}
	}
	return false
}

// stripFence removes one ```json ... ``` wrapper if present.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.Contains(s[:nl], "{") {
		s = s[nl+1:]
	}
	return strings.TrimSpace(s)
}
