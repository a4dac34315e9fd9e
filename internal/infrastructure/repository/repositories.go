package repository

import (
	"github.com/brandpulse/audit-delivery/internal/application/ports"
	"github.com/brandpulse/audit-delivery/internal/domain/entity/auditrun"
	"github.com/brandpulse/audit-delivery/internal/domain/entity/review"
	"github.com/brandpulse/audit-delivery/internal/domain/entity/signup"
	"github.com/brandpulse/audit-delivery/internal/infrastructure/database"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

// Repositories bundles the concrete Postgres repositories behind the
// application ports.
type Repositories struct {
	signups *signupRepository
	runs    *runRepository
	reviews *reviewRepository
}

func New(db database.Database, logger observability.Logger, metrics observability.Metrics) *Repositories {
	logger, metrics = observability.Scoped(logger, metrics, "repository")

	return &Repositories{
		signups: &signupRepository{
			baseRepository: newBaseRepository[signup.AuditSignup](db, logger, metrics, "audit_signups"),
		},
		runs: &runRepository{
			baseRepository: newBaseRepository[auditrun.AuditRun](db, logger, metrics, "audit_runs"),
		},
		reviews: &reviewRepository{
			baseRepository: newBaseRepository[review.BrandReview](db, logger, metrics, "brand_reviews"),
		},
	}
}

func (r *Repositories) Signups() ports.SignupRepository { return r.signups }
func (r *Repositories) Runs() ports.RunRepository       { return r.runs }
func (r *Repositories) Reviews() ports.ReviewRepository { return r.reviews }
