package questiongen

// dedup tracks folded question texts.
type dedup struct {
	seen map[string]bool
}

func newDedup(prior []string) *dedup {
	d := &dedup{seen: make(map[string]bool, len(prior))}
	for _, q := range prior {
		d.add(q)
	}
	return d
}

func (d *dedup) add(q string) { d.seen[foldText(q)] = true }

func (d *dedup) has(q string) bool { return d.seen[foldText(q)] }
