package sites

import (
	"strings"

	"hackathon-radar/pkg/domain"
)

type hackalistResponse struct {
	Hackathons []struct {
		Name      string `json:"name"`
		URL       string `json:"url"`
		Location  string `json:"location"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	} `json:"hackathons"`
}

// DecodeHackalist decodes https://hackalist.org/api/1.0/hackathons/.
// Hackalist has no ids; the name with whitespace runs replaced by "_" is used.
func DecodeHackalist(body []byte, _ map[string]string) ([]domain.Candidate, error) {
	var resp hackalistResponse
	if err := decode(body, &resp, "hackalist"); err != nil {
		return nil, err
	}
	out := make([]domain.Candidate, 0, len(resp.Hackathons))
	for _, h := range resp.Hackathons {
		mode := domain.ModeOnline
		if h.Location != "" {
			mode = domain.ModeOffline
		}
		out = append(out, domain.Candidate{
			ID:        prefixed("hackalist", flexString(strings.Join(strings.Fields(h.Name), "_"))),
			Name:      h.Name,
			Location:  h.Location,
			Mode:      string(mode),
			StartDate: h.StartDate,
			EndDate:   h.EndDate,
			SourceURL: h.URL,
		})
	}
	return out, nil
}
