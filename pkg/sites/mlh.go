package sites

import (
	"strings"

	"hackathon-radar/pkg/domain"
)

type mlhResponse struct {
	Data []struct {
		ID        flexString `json:"id"`
		Name      string     `json:"name"`
		Website   string     `json:"website"`
		Location  string     `json:"location"`
		Region    string     `json:"region"`
		EventType string     `json:"event_type"`
		StartDate string     `json:"start_date"`
		EndDate   string     `json:"end_date"`
	} `json:"data"`
}

// DecodeMLH decodes https://mlh.io/api/v2/events. params["region"] keeps only
// events of that region (the default catalog uses "Asia"); empty keeps all.
func DecodeMLH(body []byte, params map[string]string) ([]domain.Candidate, error) {
	var resp mlhResponse
	if err := decode(body, &resp, "mlh"); err != nil {
		return nil, err
	}
	region := params["region"]
	out := make([]domain.Candidate, 0, len(resp.Data))
	for _, e := range resp.Data {
		if region != "" && !strings.EqualFold(e.Region, region) {
			continue
		}
		out = append(out, domain.Candidate{
			ID:        prefixed("mlh", e.ID),
			Name:      e.Name,
			Location:  e.Location,
			Mode:      e.EventType,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			SourceURL: e.Website,
		})
	}
	return out, nil
}
