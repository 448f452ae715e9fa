package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	api "github.com/soilworks/borelog-registry/api/v1alpha1"
	"github.com/soilworks/borelog-registry/internal/store"
	"github.com/soilworks/borelog-registry/internal/store/model"
	"github.com/soilworks/borelog-registry/pkg/metrics"
)

// ApprovalService applies reviewer decisions to pending uploads. Every decision
// is terminal: once an upload leaves the pending state it can never be decided
// again.
type ApprovalService struct {
	store        store.Store
	materializer *Materializer
}

func NewApprovalService(store store.Store, materializer *Materializer) *ApprovalService {
	return &ApprovalService{store: store, materializer: materializer}
}

// Decide records the reviewer's verdict. Approval materializes the permanent
// records in the same transaction as the status change, so a failed
// materialization leaves the upload pending.
func (s *ApprovalService) Decide(ctx context.Context, id uuid.UUID, reviewer string, decision *api.DecideUploadRequest) (*model.PendingUpload, error) {
	upload, err := s.store.PendingUpload().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrUploadNotFound(id)
		}
		return nil, err
	}
	if upload.Status != model.UploadStatusPending {
		return nil, NewErrUploadAlreadyDecided(id, upload.Status)
	}

	status, err := statusForDecision(decision.Decision)
	if err != nil {
		return nil, err
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	var borelog *model.Borelog
	if status == model.UploadStatusApproved {
		upload.DecidedBy = reviewer
		if borelog, err = s.materializer.Materialize(ctx, upload); err != nil {
			_, _ = store.Rollback(ctx)
			return nil, err
		}
	}

	var createdRecordID *uuid.UUID
	if borelog != nil {
		createdRecordID = &borelog.ID
	}
	decided, err := s.store.PendingUpload().UpdateDecision(ctx, id, status, reviewer, decision.Notes, createdRecordID)
	if err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrRecordNotFound) {
			// Another reviewer got there first.
			return nil, NewErrUploadAlreadyDecided(id, upload.Status)
		}
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.IncreaseUploadDecisionsMetric(decision.Decision)
	zap.S().Named("approval").Infow("upload decided",
		"upload_id", id,
		"decision", decision.Decision,
		"reviewer", reviewer,
	)

	// The document copy is written outside the transaction: the relational
	// record is already durable and a failure here must not undo the decision.
	if borelog != nil {
		if err := s.materializer.WriteInitialVersion(ctx, decided, borelog); err != nil {
			zap.S().Named("approval").Warnw("initial record version write failed",
				"upload_id", id,
				"borelog_id", borelog.ID,
				"error", err,
			)
		}
	}

	return decided, nil
}

func statusForDecision(decision string) (string, error) {
	switch decision {
	case api.DecisionApprove:
		return model.UploadStatusApproved, nil
	case api.DecisionReject:
		return model.UploadStatusRejected, nil
	case api.DecisionReturnForRevision:
		return model.UploadStatusReturned, nil
	default:
		return "", NewErrInvalidDecision(decision)
	}
}
