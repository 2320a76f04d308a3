package catalog

import "fmt"

// validateRecords performs all structural checks on the raw records.
// Returns a *ValidationError describing every problem found, or nil.
func validateRecords(records []RawTopic) error {
	var errs []string
	names := make(map[string]string, len(records))

	for i, r := range records {
		label := topicLabel(i, r)

		name := NormalizeName(r.Topic)
		if name == "" {
			errs = append(errs, fmt.Sprintf("%s: topic name is empty", label))
		} else if prev, dup := names[name]; dup {
			errs = append(errs, fmt.Sprintf("%s: duplicate topic name %q (also %s)", label, r.Topic, prev))
		} else {
			names[name] = label
		}

		errs = append(errs, validateTopic(label, r)...)
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

func validateTopic(label string, r RawTopic) []string {
	var errs []string

	ids := make(map[ID]bool, len(r.Questions))
	for _, q := range r.Questions {
		if q.ID == "" {
			errs = append(errs, fmt.Sprintf("%s: question with empty id", label))
			continue
		}
		if ids[q.ID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate question id %q", label, q.ID))
		}
		ids[q.ID] = true
		if !Level(q.Difficulty).Valid() {
			errs = append(errs, fmt.Sprintf("%s: question %q has level %d outside %d..%d",
				label, q.ID, q.Difficulty, MinLevel, MaxLevel))
		}
	}

	seen := make(map[ID]bool, len(r.Choices))
	for _, cs := range r.Choices {
		if !ids[cs.QuestionID] {
			errs = append(errs, fmt.Sprintf("%s: choices reference unknown question %q", label, cs.QuestionID))
			continue
		}
		if seen[cs.QuestionID] {
			errs = append(errs, fmt.Sprintf("%s: question %q has more than one choice set", label, cs.QuestionID))
		}
		seen[cs.QuestionID] = true
		if len(cs.Choices) < 2 {
			errs = append(errs, fmt.Sprintf("%s: question %q has %d options, need at least 2",
				label, cs.QuestionID, len(cs.Choices)))
		}
		if cs.Answer < 0 || cs.Answer >= len(cs.Choices) {
			errs = append(errs, fmt.Sprintf("%s: question %q answer index %d out of range [0,%d)",
				label, cs.QuestionID, cs.Answer, len(cs.Choices)))
		}
	}

	for _, q := range r.Questions {
		if q.ID != "" && !seen[q.ID] {
			errs = append(errs, fmt.Sprintf("%s: question %q has no choices", label, q.ID))
		}
	}
	return errs
}

func topicLabel(i int, r RawTopic) string {
	switch {
	case r.Source != "" && r.Topic != "":
		return fmt.Sprintf("topic %q (%s)", r.Topic, r.Source)
	case r.Topic != "":
		return fmt.Sprintf("topic %q", r.Topic)
	case r.Source != "":
		return fmt.Sprintf("topic #%d (%s)", i+1, r.Source)
	default:
		return fmt.Sprintf("topic #%d", i+1)
	}
}
