package carousel

// Dot is one indicator control; selecting it jumps to Index.
type Dot struct {
	Index  int
	Active bool
}

// Controls describes what a card renders for a given state.
type Controls struct {
	Visible  bool // false when there is no media at all
	Index    int
	Total    int
	Prev     int
	Next     int
	ShowPrev bool
	ShowNext bool
	Dots     []Dot
}

// Controls computes the rendering of s. With no media nothing is rendered,
// a single element renders without navigation, and longer lists render
// prev/next (subject to the edge policy) plus one dot per element.
func (s State) Controls(policy EdgePolicy) Controls {
	c := Controls{
		Visible: s.Len > 0,
		Index:   s.Current,
		Total:   s.Len,
	}
	if s.Len <= 1 {
		return c
	}

	c.Prev = s.Prev().Current
	c.Next = s.Next().Current
	c.ShowPrev = true
	c.ShowNext = true
	if policy == HideAtEdges {
		c.ShowPrev = s.Current > 0
		c.ShowNext = s.Current < s.Len-1
	}

	c.Dots = make([]Dot, s.Len)
	for i := range c.Dots {
		c.Dots[i] = Dot{Index: s.Jump(i).Current, Active: i == s.Current}
	}

	return c
}
