package reconciler

import "github.com/autolistings/listing-sync/internal/platform/models"

// SlotAction is what happens to an image slot during reconciliation.
type SlotAction int

const (
	// SlotEmpty leaves slot without image.
	SlotEmpty SlotAction = iota
	// SlotKeep keeps already stored image.
	SlotKeep
	// SlotFetch offloads candidate image into the slot.
	SlotFetch
)

// SlotPlan is resolved action for one image slot with the URL it applies to.
type SlotPlan struct {
	Action SlotAction
	URL    string
}

// MergeImageSlots resolves image slots of a listing from stored images and freshly scraped candidates.
// Stored image is never replaced or removed, candidate is fetched only into a slot without stored image.
func MergeImageSlots(existing, candidate [models.MaxImages]string) [models.MaxImages]SlotPlan {
	var plans [models.MaxImages]SlotPlan

	for slot := range plans {
		switch {
		case existing[slot] != "":
			plans[slot] = SlotPlan{Action: SlotKeep, URL: existing[slot]}
		case candidate[slot] != "":
			plans[slot] = SlotPlan{Action: SlotFetch, URL: candidate[slot]}
		default:
			plans[slot] = SlotPlan{Action: SlotEmpty}
		}
	}

	return plans
}
