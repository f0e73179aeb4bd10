package service

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/theapemachine/cinematch/pkg/a2a"
	"github.com/theapemachine/cinematch/pkg/ai"
	"github.com/theapemachine/cinematch/pkg/errors"
	"github.com/theapemachine/cinematch/pkg/jsonrpc"
)

/*
handleSync runs the agent inside the request and answers with the task
result as a JSON-RPC response.
*/
func (srv *Server) handleSync(ctx fiber.Ctx) error {
	agentID := strings.Clone(ctx.Params("agentId"))

	req, err := jsonrpc.NewRequest(ctx.Body())
	if err != nil {
		return srv.syncInternal(ctx, err)
	}

	if req.JSONRPC != jsonrpc.Version || jsonrpc.IsFalsyID(req.ID) {
		var id json.RawMessage
		if !jsonrpc.IsFalsyID(req.ID) {
			id = req.ID
		}

		return srv.syncError(ctx, fiber.StatusBadRequest, id, errors.ErrInvalidRequest.WithMessagef(
			`Invalid Request: jsonrpc must be "2.0" and id is required`,
		))
	}

	agent, err := srv.agents.Get(agentID)
	if err != nil {
		if errors.IsAgentNotFound(err) {
			return srv.syncError(ctx, fiber.StatusNotFound, req.ID, errors.ErrInvalidParams.WithMessagef(
				"%s", err.Error(),
			))
		}

		return srv.syncInternal(ctx, err)
	}

	params, err := a2a.DecodeSendParams(req.Params)
	if err != nil {
		return srv.syncInternal(ctx, err)
	}

	if params.Message == nil || len(params.Message.Parts) == 0 {
		return srv.syncError(ctx, fiber.StatusBadRequest, req.ID, errors.ErrInvalidParams.WithMessagef(
			"Invalid params: message with parts required",
		))
	}

	taskID, contextID := taskIdentity(params)

	result, err := agent.Generate(ctx, params.Prompt(), ai.WithContextID(contextID))
	if err != nil {
		return srv.syncInternal(ctx, err)
	}

	task := completedTask(agentID, taskID, contextID, result)

	user := *params.Message
	user.Kind = a2a.KindMessage
	user.TaskID = taskID
	user.ContextID = contextID

	if user.Role == "" {
		user.Role = a2a.RoleUser
	}

	if user.MessageID == "" {
		user.MessageID = uuid.NewString()
	}

	task.AddHistory(user, *task.Status.Message)

	srv.metrics.Request(ModeSync, "completed")

	return ctx.Status(fiber.StatusOK).JSON(jsonrpc.NewResult(req.ID, task))
}

func (srv *Server) syncError(
	ctx fiber.Ctx, status int, id json.RawMessage, rpcErr *errors.RpcError,
) error {
	srv.metrics.Request(ModeSync, "rejected")
	log.Warn("sync request rejected", "status", status, "code", rpcErr.Code, "message", rpcErr.Message)

	return ctx.Status(status).JSON(jsonrpc.NewErrorResponse(id, rpcErr))
}

// syncInternal reports an unexpected failure, always with a null id.
func (srv *Server) syncInternal(ctx fiber.Ctx, err error) error {
	srv.metrics.Request(ModeSync, "failed")
	log.Error("sync request failed", "error", err)

	return ctx.Status(fiber.StatusInternalServerError).JSON(jsonrpc.NewErrorResponse(
		nil, errors.ErrInternal.WithData(map[string]string{"details": err.Error()}),
	))
}
