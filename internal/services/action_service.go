package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Brian-Masheti/rentowl-sub001/internal/dtos"
	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
	"github.com/Brian-Masheti/rentowl-sub001/internal/repositories"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

// CaretakerActionService maintains the append-only caretaker activity
// log: writes fan out to the live feed, reads share one filter
// implementation so the query endpoint and the CSV export can never
// disagree on which rows match.
type CaretakerActionService interface {
	Log(ctx context.Context, in dtos.LogActionRequest) (*models.CaretakerAction, error)
	Query(ctx context.Context, filter repositories.ActionFilter) ([]*models.CaretakerAction, error)
	ExportCSV(ctx context.Context, filter repositories.ActionFilter, w io.Writer) error
}

type caretakerActionService struct {
	actionRepo    repositories.CaretakerActionRepository
	caretakerRepo repositories.CaretakerRepository
	feed          ActionFeed
}

func NewCaretakerActionService(
	actionRepo repositories.CaretakerActionRepository,
	caretakerRepo repositories.CaretakerRepository,
	feed ActionFeed,
) CaretakerActionService {
	return &caretakerActionService{
		actionRepo:    actionRepo,
		caretakerRepo: caretakerRepo,
		feed:          feed,
	}
}

func (s *caretakerActionService) Log(ctx context.Context, in dtos.LogActionRequest) (*models.CaretakerAction, error) {
	caretaker, err := s.caretakerRepo.GetByID(ctx, in.CaretakerID)
	if err != nil {
		return nil, err
	}
	if caretaker == nil {
		return nil, utils.ErrCaretakerNotFound
	}
	if !caretaker.IsActive {
		return nil, utils.ErrCaretakerInactive
	}

	a := &models.CaretakerAction{
		ID:          uuid.New(),
		CaretakerID: in.CaretakerID,
		PropertyID:  in.PropertyID,
		ActionType:  models.ActionType(in.ActionType),
		Status:      models.ActionStatus(in.Status),
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.actionRepo.Insert(ctx, a); err != nil {
		return nil, err
	}

	// The row is durable at this point; a feed hiccup only costs live
	// delivery, and disconnected viewers re-query anyway.
	if s.feed != nil {
		if err := s.feed.Publish(ctx, a); err != nil {
			utils.Logger.WithError(err).Warn("Action feed publish failed")
		}
	}
	return a, nil
}

func (s *caretakerActionService) Query(ctx context.Context, filter repositories.ActionFilter) ([]*models.CaretakerAction, error) {
	actions, err := s.actionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if actions == nil {
		actions = []*models.CaretakerAction{}
	}
	return actions, nil
}

var exportHeader = []string{"id", "caretaker_id", "property_id", "action_type", "status", "description", "created_at"}

// ExportCSV streams the filtered log as CSV. It runs the exact same
// query as Query so the download matches what the viewer saw.
func (s *caretakerActionService) ExportCSV(ctx context.Context, filter repositories.ActionFilter, w io.Writer) error {
	actions, err := s.Query(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, a := range actions {
		propertyID := ""
		if a.PropertyID != nil {
			propertyID = a.PropertyID.String()
		}
		record := []string{
			a.ID.String(),
			a.CaretakerID.String(),
			propertyID,
			string(a.ActionType),
			string(a.Status),
			a.Description,
			a.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseActionFilter maps query-string values onto an ActionFilter.
// Unknown or malformed values fail loudly rather than silently
// widening the result set.
func ParseActionFilter(values map[string]string) (repositories.ActionFilter, error) {
	var f repositories.ActionFilter

	f.Search = values["search"]
	if v := values["caretakerId"]; v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, err
		}
		f.CaretakerID = &id
	}
	if v := values["propertyId"]; v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, err
		}
		f.PropertyID = &id
	}
	if v := values["actionType"]; v != "" {
		if !models.ValidActionType(v) {
			return f, fmt.Errorf("unknown action type %q", v)
		}
		f.ActionType = models.ActionType(v)
	}
	if v := values["status"]; v != "" {
		if !models.ValidActionStatus(v) {
			return f, fmt.Errorf("unknown action status %q", v)
		}
		f.Status = models.ActionStatus(v)
	}
	if v := values["from"]; v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, err
		}
		f.From = &t
	}
	if v := values["to"]; v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, err
		}
		f.To = &t
	}
	return f, nil
}
