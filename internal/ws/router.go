package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/tallyhq/tally/internal/metrics"
	"github.com/tallyhq/tally/internal/service"
)

// Router decodes inbound envelopes and dispatches them by kind: it invokes
// the ledger service, updates the registry, and triggers fan-out. Each
// envelope is a one-shot request; the only cross-envelope state is the
// session's room membership.
//
// Failures never tear down the connection. Malformed frames, unknown
// kinds and persistence errors all turn into an ERROR envelope to the
// requesting session.
type Router struct {
	ledger      *service.LedgerService
	registry    *Registry
	broadcaster *Broadcaster
}

// NewRouter creates a router over the given ledger service and registry.
func NewRouter(ledger *service.LedgerService, registry *Registry) *Router {
	return &Router{
		ledger:      ledger,
		registry:    registry,
		broadcaster: NewBroadcaster(registry),
	}
}

// HandleFrame processes one inbound wire frame from a session.
func (r *Router) HandleFrame(ctx context.Context, s *Session, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		metrics.EnvelopesTotal.WithLabelValues("malformed").Inc()
		slog.Warn("Malformed envelope", "session_id", s.ID, "error", err)
		r.sendError(s, codeMalformedEnvelope, "unparseable frame")
		return
	}

	metrics.EnvelopesTotal.WithLabelValues(string(env.Type)).Inc()

	switch env.Type {
	case KindOpen:
		r.handleOpen(ctx, s, env.Data)
	case KindUpload:
		r.handleUpload(ctx, s, env.Data)
	case KindPassChange:
		r.handlePassChange(ctx, s, env.Data)
	case KindDelete:
		r.handleDelete(ctx, s, env.Data)
	case KindCheck:
		r.handleCheck(ctx, s, env.Data)
	default:
		slog.Warn("Unknown envelope kind", "session_id", s.ID, "kind", env.Type)
		r.sendError(s, codeUnknownKind, "unknown message kind")
	}
}

// handleOpen resolves or creates the room for the token pair, moves the
// session into it, and replies with the room's current item list.
// On storage failure the session's membership is left untouched.
func (r *Router) handleOpen(ctx context.Context, s *Session, data json.RawMessage) {
	var req openData
	if err := json.Unmarshal(data, &req); err != nil {
		r.sendError(s, codeMalformedEnvelope, "bad OPEN payload")
		return
	}

	roomKey, items, err := r.ledger.OpenRoom(ctx, req.UserName, req.DateToken)
	if err != nil {
		r.sendError(s, codePersistenceFailure, "could not open room")
		return
	}
	r.registry.Join(s, roomKey)

	views := make([]ItemView, len(items))
	for i, item := range items {
		views[i] = ItemView{
			Item:     item.Item,
			Category: item.Category,
			Dollar:   item.Dollar,
			Key:      item.ID,
		}
	}
	r.send(s, KindOpen, openReply{Items: views})
}

// handleUpload appends a line item and fans it out to the room, the
// uploader included. Like OPEN it also moves the session into the room.
func (r *Router) handleUpload(ctx context.Context, s *Session, data json.RawMessage) {
	var req uploadData
	if err := json.Unmarshal(data, &req); err != nil {
		r.sendError(s, codeMalformedEnvelope, "bad UPLOAD payload")
		return
	}

	roomKey, item, err := r.ledger.UploadItem(ctx, req.UserName, req.DateToken, req.Item, req.Category, req.Dollar)
	if err != nil {
		r.sendError(s, codePersistenceFailure, "could not upload item")
		return
	}
	r.registry.Join(s, roomKey)

	r.broadcaster.Broadcast(roomKey, KindUpload, uploadEvent{
		UserName: req.UserName,
		Item:     item.Item,
		Category: item.Category,
		Dollar:   item.Dollar,
		Key:      item.ID,
		RoomKey:  roomKey,
	})
}

func (r *Router) handlePassChange(ctx context.Context, s *Session, data json.RawMessage) {
	var req passChangeData
	if err := json.Unmarshal(data, &req); err != nil {
		r.sendError(s, codeMalformedEnvelope, "bad PASSCHANGE payload")
		return
	}

	err := r.ledger.ChangePassword(ctx, req.UserName, req.NewPassword)
	if errors.Is(err, service.ErrAccountNotFound) {
		r.sendError(s, codeAccountNotFound, "no such account")
		return
	}
	if err != nil {
		r.sendError(s, codePersistenceFailure, "could not change password")
		return
	}
	r.send(s, KindPassChange, passChangeReply{Change: true})
}

// handleDelete removes an item by identifier. Success is silent; a miss
// gets an explicit ERROR reply rather than the historical no-op.
func (r *Router) handleDelete(ctx context.Context, s *Session, data json.RawMessage) {
	var req deleteData
	if err := json.Unmarshal(data, &req); err != nil {
		r.sendError(s, codeMalformedEnvelope, "bad DELETE payload")
		return
	}

	deleted, err := r.ledger.DeleteItem(ctx, req.ItemIdentifier)
	if err != nil {
		r.sendError(s, codePersistenceFailure, "could not delete item")
		return
	}
	if !deleted {
		r.sendError(s, codeItemNotFound, "no such item")
	}
}

func (r *Router) handleCheck(ctx context.Context, s *Session, data json.RawMessage) {
	var req checkData
	if err := json.Unmarshal(data, &req); err != nil {
		r.sendError(s, codeMalformedEnvelope, "bad CHECK payload")
		return
	}

	login, err := r.ledger.CheckIn(ctx, req.UserName, req.Password)
	if err != nil {
		r.sendError(s, codePersistenceFailure, "could not check in")
		return
	}
	r.send(s, KindCheck, checkReply{Login: login})
}

// send delivers an envelope to a single session, best-effort.
func (r *Router) send(s *Session, kind Kind, payload any) {
	frame, err := encode(kind, payload)
	if err != nil {
		slog.Error("Reply encode failed", "session_id", s.ID, "kind", kind, "error", err)
		return
	}
	s.Send(frame)
}

func (r *Router) sendError(s *Session, code, message string) {
	r.send(s, KindError, errorReply{Code: code, Message: message})
}
