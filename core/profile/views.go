package profile

// VisibleActivities returns the activities flagged to appear on the profile, in list order.
func VisibleActivities(d StudentData) []Activity {
	visible := make([]Activity, 0, len(d.Activities))
	for _, a := range d.Activities {
		if a.AppearOnProfile {
			visible = append(visible, a)
		}
	}
	return visible
}

// VisibleHonors returns the honors flagged to appear on the profile, in list order.
func VisibleHonors(d StudentData) []Honor {
	visible := make([]Honor, 0, len(d.Honors))
	for _, h := range d.Honors {
		if h.AppearOnProfile {
			visible = append(visible, h)
		}
	}
	return visible
}

type Counts struct {
	Draft    int `json:"draft"`
	Complete int `json:"complete"`
}

// Summary is the dashboard's profile overview.
type Summary struct {
	Name       string     `json:"name"`
	School     string     `json:"school"`
	Activities []Activity `json:"activities"`
	Honors     []Honor    `json:"honors"`
	// counts cover every entry, visible or not
	ActivityCounts Counts `json:"activityCounts"`
	HonorCounts    Counts `json:"honorCounts"`
}

func Summarize(d StudentData) Summary {
	sum := Summary{
		Name:       d.Personal.FullName(),
		School:     d.Education.SchoolName,
		Activities: VisibleActivities(d),
		Honors:     VisibleHonors(d),
	}
	for _, a := range d.Activities {
		sum.ActivityCounts.add(a.Status)
	}
	for _, h := range d.Honors {
		sum.HonorCounts.add(h.Status)
	}
	return sum
}

func (c *Counts) add(st Status) {
	if st == StatusComplete {
		c.Complete++
	} else {
		c.Draft++
	}
}
