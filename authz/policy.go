package authz

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"ruedo-cms/logging"
	"ruedo-cms/models"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// subjectAnonymous is the casbin subject for callers without a principal.
const subjectAnonymous = "ANONYMOUS"

// Policy answers role-level questions: may this role attempt this action on
// this resource type at all.
type Policy struct {
	enforcer *casbin.SyncedEnforcer
}

// LoadPolicy builds the enforcer from the embedded model and policy.
func LoadPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if err := loadEmbeddedPolicy(enforcer, embeddedPolicy); err != nil {
		return nil, err
	}
	return &Policy{enforcer: enforcer}, nil
}

func loadEmbeddedPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		switch {
		case parts[0] == "p" && len(parts) == 4:
			if _, err := enforcer.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
				return fmt.Errorf("failed to add policy %v: %w", parts[1:], err)
			}
		case parts[0] == "g" && len(parts) == 3:
			if _, err := enforcer.AddGroupingPolicy(parts[1], parts[2]); err != nil {
				return fmt.Errorf("failed to add grouping policy %v: %w", parts[1:], err)
			}
		default:
			return fmt.Errorf("malformed policy line %q", line)
		}
	}
	return nil
}

// Allows reports whether the principal's role grants act on t. Anonymous
// callers are evaluated as ANONYMOUS.
func (p *Policy) Allows(principal *models.User, t ResourceType, act Action) bool {
	ok, err := p.enforcer.Enforce(subject(principal), string(t), string(act))
	if err != nil {
		logging.Error().Err(err).Str("resource", string(t)).Str("action", string(act)).Msg("policy evaluation failed")
		return false
	}
	return ok
}

func subject(principal *models.User) string {
	if principal == nil {
		return subjectAnonymous
	}
	return string(principal.Role)
}
