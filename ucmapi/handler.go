package ucmapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/crewlinker/ucman/ucmzap"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Define the handling input output. Failed records are reported individually so a poison message
// doesn't block the whole batch, the event source mapping is configured to report them.
type (
	// Input into the handler.
	Input events.SQSEvent
	// Output of the handler.
	Output events.SQSEventResponse
)

// ErrUseCaseExists is returned when a create command names a use case that already has a record.
var ErrUseCaseExists = errors.New("use case already exists")

// ErrUseCaseNotFound is returned when an update command names a use case without a record.
var ErrUseCaseNotFound = errors.New("use case not found")

// Handler handles batches of use-case commands from the request queue.
type Handler struct {
	cfg      Config
	logs     *zap.Logger
	val      *validator.Validate
	store    *Store
	deployer *Deployer
	webcfg   *WebConfigSource
}

// New inits the handler.
func New(
	cfg Config,
	logs *zap.Logger,

	store *Store,
	deployer *Deployer,
	webcfg *WebConfigSource,
) *Handler {
	return &Handler{
		cfg:      cfg,
		logs:     logs,
		val:      validator.New(),
		store:    store,
		deployer: deployer,
		webcfg:   webcfg,
	}
}

// Handle lambda input. It never returns an error for bad records: those are reported as batch
// item failures so the queue redrives only the records that failed.
func (h *Handler) Handle(ctx context.Context, in Input) (out Output, err error) {
	logs := ucmzap.Log(ctx, h.logs)

	for _, msg := range in.Records {
		if err := h.handleMessage(ctx, logs, msg); err != nil {
			logs.Error("failed to handle message",
				zap.String("message_id", msg.MessageId), zap.Error(err))

			out.BatchItemFailures = append(out.BatchItemFailures,
				events.SQSBatchItemFailure{ItemIdentifier: msg.MessageId})
		}
	}

	return out, nil
}

// handleMessage decodes and dispatches a single command.
func (h *Handler) handleMessage(ctx context.Context, logs *zap.Logger, msg events.SQSMessage) error {
	var cmd Command
	if err := json.Unmarshal([]byte(msg.Body), &cmd); err != nil {
		return fmt.Errorf("failed to unmarshal command: %w", err)
	}

	if err := h.val.Struct(cmd); err != nil {
		return fmt.Errorf("failed to validate command: %w", err)
	}

	logs.Info("handling command",
		zap.String("action", string(cmd.Action)),
		zap.Stringer("use_case_id", cmd.UseCase.ID))

	switch cmd.Action {
	case ActionCreate:
		return h.handleCreate(ctx, cmd.UseCase)
	case ActionUpdate:
		return h.handleUpdate(ctx, cmd.UseCase)
	case ActionDelete:
		return h.handleDelete(ctx, cmd.UseCase)
	default:
		return fmt.Errorf("unsupported action: %s", cmd.Action) //nolint:goerr113
	}
}

// handleCreate deploys a new use-case stack and records it.
func (h *Handler) handleCreate(ctx context.Context, uc UseCase) error {
	if uc.TemplateName == "" {
		return errors.New("create command without template name") //nolint:goerr113
	}

	if _, ok, err := h.store.Get(ctx, uc.ID); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("%w: %s", ErrUseCaseExists, uc.ID)
	}

	uc, err := h.withWebConfigParameters(ctx, uc)
	if err != nil {
		return err
	}

	name, err := h.deployer.Create(ctx, uc)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	return h.store.Put(ctx, Record{
		UseCaseID:    uc.ID.String(),
		Name:         uc.Name,
		Description:  uc.Description,
		TemplateName: uc.TemplateName,
		StackName:    name,
		Status:       "CREATE_IN_PROGRESS",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// handleUpdate updates the use case's existing stack and record.
func (h *Handler) handleUpdate(ctx context.Context, uc UseCase) error {
	if uc.TemplateName == "" {
		return errors.New("update command without template name") //nolint:goerr113
	}

	rec, ok, err := h.store.Get(ctx, uc.ID)
	if err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("%w: %s", ErrUseCaseNotFound, uc.ID)
	}

	uc, err = h.withWebConfigParameters(ctx, uc)
	if err != nil {
		return err
	}

	name, err := h.deployer.Update(ctx, uc)
	if err != nil {
		return err
	}

	rec.Name = uc.Name
	rec.Description = uc.Description
	rec.TemplateName = uc.TemplateName
	rec.StackName = name
	rec.Status = "UPDATE_IN_PROGRESS"
	rec.UpdatedAt = time.Now().UTC()

	return h.store.Put(ctx, rec)
}

// handleDelete removes the use case's stack and record.
func (h *Handler) handleDelete(ctx context.Context, uc UseCase) error {
	if _, err := h.deployer.Delete(ctx, uc); err != nil {
		return err
	}

	return h.store.Delete(ctx, uc.ID)
}

// withWebConfigParameters injects values from the web configuration document as stack parameters
// so deployed use cases show the same branding as the rest of the application. The configured
// trademark name serves as the fallback when the document doesn't carry one.
func (h *Handler) withWebConfigParameters(ctx context.Context, uc UseCase) (UseCase, error) {
	trademark := h.cfg.TrademarkName

	if h.cfg.WebConfigSSMKey != "" {
		wc, err := h.webcfg.Read(ctx)
		if err != nil {
			return uc, fmt.Errorf("failed to read web config: %w", err)
		}

		if wc.TrademarkName != "" {
			trademark = wc.TrademarkName
		}
	}

	if trademark == "" {
		return uc, nil
	}

	if uc.Parameters == nil {
		uc.Parameters = map[string]string{}
	}

	if _, ok := uc.Parameters["ApplicationTrademarkName"]; !ok {
		uc.Parameters["ApplicationTrademarkName"] = trademark
	}

	return uc, nil
}
