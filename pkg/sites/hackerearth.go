package sites

import "hackathon-radar/pkg/domain"

type hackerEarthEvent struct {
	ID        flexString `json:"id"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	City      string     `json:"city"`
	EventType string     `json:"event_type"`
	StartUTC  string     `json:"start_utc"`
	EndUTC    string     `json:"end_utc"`
}

// DecodeHackerEarth decodes the HackerEarth events feed, a bare JSON array
// of all challenge types. Only event_type "hackathon" is kept. An event with
// a city is in person.
func DecodeHackerEarth(body []byte, _ map[string]string) ([]domain.Candidate, error) {
	var events []hackerEarthEvent
	if err := decode(body, &events, "hackerearth"); err != nil {
		return nil, err
	}
	out := make([]domain.Candidate, 0, len(events))
	for _, e := range events {
		if e.EventType != "hackathon" {
			continue
		}
		mode := domain.ModeOnline
		if e.City != "" {
			mode = domain.ModeOffline
		}
		out = append(out, domain.Candidate{
			ID:        prefixed("hackerearth", e.ID),
			Name:      e.Title,
			Location:  e.City,
			Mode:      string(mode),
			StartDate: e.StartUTC,
			EndDate:   e.EndUTC,
			SourceURL: e.URL,
		})
	}
	return out, nil
}
