package matching

import (
	"sort"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
)

type candidate struct {
	profile *entity.ProviderProfile
	stats   entity.RatingStats
}

// selectCandidates keeps profiles that serve the category in the requested
// place and, when slot is set, are available in that weekly slot.
func selectCandidates(profiles []*entity.ProviderProfile, categoryID uuid.UUID, postalCode, city string, slot *valueobject.WeeklySlot) []*entity.ProviderProfile {
	out := make([]*entity.ProviderProfile, 0, len(profiles))
	for _, p := range profiles {
		if !p.ServesCategory(categoryID) || !p.ServesLocation(postalCode, city) {
			continue
		}
		if slot != nil && !p.IsAvailable(*slot) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// rank orders candidates: verified first, then higher average rating (no
// ratings count as 0.0), then older profiles first.
func rank(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.profile.IsVerified != b.profile.IsVerified {
			return a.profile.IsVerified
		}
		if ra, rb := a.stats.RankValue(), b.stats.RankValue(); ra != rb {
			return ra > rb
		}
		return a.profile.CreatedAt.Before(b.profile.CreatedAt)
	})
}
