package operator

import (
	"context"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budgetforge/internal/operator/actions"
	"github.com/carson-networks/budgetforge/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage Store
	queue   chan ActionItem
	log     *logrus.Logger
}

// Store opens the database transaction an action runs in.
type Store interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

func NewOperator(s Store, queue chan ActionItem, log *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		log:     log,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		if rbErr := writer.Rollback(item.ctx); rbErr != nil {
			o.log.WithError(rbErr).WithField("action", actionName(item.action)).Warn("Operator.Rollback")
		}
		item.response <- ActionItemResponse{err: err}
		return
	}

	if err = writer.Commit(item.ctx); err != nil {
		item.response <- ActionItemResponse{err: fmt.Errorf("commit: %w", err)}
		return
	}

	item.response <- ActionItemResponse{}
}

func actionName(action actions.IAction) string {
	t := reflect.TypeOf(action)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
