package sites

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"hackathon-radar/pkg/domain"
)

// Decoder maps one page of a vendor API response to candidates. params come
// from the source catalog entry. A page with no listings returns an empty
// slice and no error; a payload of the wrong shape returns an error.
type Decoder func(body []byte, params map[string]string) ([]domain.Candidate, error)

var decoders = map[string]Decoder{
	"unstop":       DecodeUnstop,
	"devfolio":     DecodeDevfolio,
	"hackerearth":  DecodeHackerEarth,
	"devpost":      DecodeDevpost,
	"mlh":          DecodeMLH,
	"hackalist":    DecodeHackalist,
	"hackathoncom": DecodeHackathonCom,
	"taikai":       DecodeTaikai,
}

// Lookup returns the decoder registered under name.
func Lookup(name string) (Decoder, error) {
	d, ok := decoders[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown site decoder %q", name)
	}
	return d, nil
}

// Names lists the registered decoders.
func Names() []string {
	out := make([]string, 0, len(decoders))
	for k := range decoders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// flexString accepts a JSON string, number or null. Vendor ids come as
// either.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(b))
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) String() string { return strings.TrimSpace(string(f)) }

// flexBool accepts true/false, "true"/"false", 1/0 and null.
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = false
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("expected bool, got %s", string(b))
	}
	*f = flexBool(v)
	return nil
}

func prefixed(prefix string, id flexString) string {
	if id.String() == "" {
		return ""
	}
	return prefix + "_" + id.String()
}

func modeFromFlag(online flexBool) string {
	if online {
		return string(domain.ModeOnline)
	}
	return string(domain.ModeOffline)
}

func decode(body []byte, v any, site string) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%s: malformed payload: %w", site, err)
	}
	return nil
}
