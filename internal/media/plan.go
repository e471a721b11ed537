package media

// Plan describes how a product's image lists change when the admin submits
// the subset of current images to keep.
type Plan struct {
	KeptURLs      []string
	KeptPublicIDs []string
	Removed       []string
}

// PlanUpdate diffs stored images against keep. images and publicIDs are
// parallel lists; URLs in keep that are not stored are ignored so a client
// cannot attach foreign URLs.
func PlanUpdate(images, publicIDs, keep []string) Plan {
	wanted := make(map[string]struct{}, len(keep))
	for _, url := range keep {
		wanted[url] = struct{}{}
	}

	plan := Plan{
		KeptURLs:      make([]string, 0, len(images)),
		KeptPublicIDs: make([]string, 0, len(images)),
		Removed:       make([]string, 0),
	}
	for i, url := range images {
		id := ""
		if i < len(publicIDs) {
			id = publicIDs[i]
		}
		if _, ok := wanted[url]; ok {
			plan.KeptURLs = append(plan.KeptURLs, url)
			plan.KeptPublicIDs = append(plan.KeptPublicIDs, id)
			continue
		}
		if id != "" {
			plan.Removed = append(plan.Removed, id)
		}
	}
	return plan
}
