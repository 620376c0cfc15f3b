package repository

import (
	"fmt"

	"stockbuddy/internal/db/models/postgres/public/model"
	"stockbuddy/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

// ApiRequestRepository records every api call and its response
type ApiRequestRepository interface {
	Add(db qrm.Queryable, ar model.APIRequest) (*model.APIRequest, error)
	Update(db qrm.Executable, ar model.APIRequest) error
}

type ApiRequestRepositoryHandler struct{}

func (h ApiRequestRepositoryHandler) Add(db qrm.Queryable, ar model.APIRequest) (*model.APIRequest, error) {
	if ar.RequestID == uuid.Nil {
		ar.RequestID = uuid.New()
	}
	t := table.APIRequest

	query := t.INSERT(t.AllColumns).
		MODEL(ar).
		RETURNING(t.AllColumns)

	out := &model.APIRequest{}
	err := query.Query(db, out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert API request: %w", err)
	}

	return out, nil
}

func (h ApiRequestRepositoryHandler) Update(db qrm.Executable, ar model.APIRequest) error {
	t := table.APIRequest
	query := t.UPDATE(t.DurationMs, t.StatusCode, t.ResponseBody).
		MODEL(ar).
		WHERE(t.RequestID.EQ(postgres.UUID(ar.RequestID)))

	_, err := query.Exec(db)
	if err != nil {
		return fmt.Errorf("failed to update API request: %w", err)
	}

	return nil
}
