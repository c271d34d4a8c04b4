package domain

import "encoding/json"

// altIDs are the other names an id may arrive under. Older endpoints send
// the raw Mongo "_id", some send a plain "id".
type altIDs struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
}

// fallbackID returns the first alternative id found in raw, or "".
func fallbackID(raw []byte) string {
	var alt altIDs
	if err := json.Unmarshal(raw, &alt); err != nil {
		return ""
	}
	if alt.ID != "" {
		return alt.ID
	}
	return alt.MongoID
}

func (w *WorkoutStatus) UnmarshalJSON(raw []byte) error {
	type wire WorkoutStatus
	var v wire
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*w = WorkoutStatus(v)
	if w.ID == "" {
		w.ID = fallbackID(raw)
	}
	return nil
}

func (w *WorkoutPlan) UnmarshalJSON(raw []byte) error {
	type wire WorkoutPlan
	var v wire
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*w = WorkoutPlan(v)
	if w.ID == "" {
		w.ID = fallbackID(raw)
	}
	return nil
}

func (m *MealPlan) UnmarshalJSON(raw []byte) error {
	type wire MealPlan
	var v wire
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*m = MealPlan(v)
	if m.ID == "" {
		m.ID = fallbackID(raw)
	}
	return nil
}

func (p *Post) UnmarshalJSON(raw []byte) error {
	type wire Post
	var v wire
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*p = Post(v)
	if p.ID == "" {
		p.ID = fallbackID(raw)
	}
	return nil
}

func (c *Comment) UnmarshalJSON(raw []byte) error {
	type wire Comment
	var v wire
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*c = Comment(v)
	if c.ID == "" {
		c.ID = fallbackID(raw)
	}
	return nil
}
