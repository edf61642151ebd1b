package correlation

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-gac/pkg/alert"
	"github.com/dd0wney/cluso-gac/pkg/classify"
)

// clusterNamespace scopes cluster ids so they never collide with other
// name-based UUIDs
var clusterNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:gac:cluster"))

// Cluster is one classified community of correlated alerts
type Cluster struct {
	// ID is derived from the member uids, so the same alerts always give the
	// same id
	ID         string           `json:"id"`
	Community  int              `json:"community"`
	Certainty  float64          `json:"certainty"`
	Pattern    classify.Pattern `json:"pattern"`
	Alerts     []alert.Alert    `json:"alerts"`
	Attackers  []string         `json:"attackers"`
	Victims    []string         `json:"victims"`
	Scores     classify.Scores  `json:"scores"`
	Degenerate bool             `json:"degenerate"`
	Density    float64          `json:"density"`
}

// ClusterID returns the UUIDv5 of the sorted uids
func ClusterID(uids []string) string {
	sorted := append([]string(nil), uids...)
	sort.Strings(sorted)
	return uuid.NewSHA1(clusterNamespace, []byte(strings.Join(sorted, "\x00"))).String()
}
