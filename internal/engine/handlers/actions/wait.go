package actions

import (
	"fmt"

	"roguely-server/internal/engine/handlers"
)

func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     fmt.Sprintf("%s waits.", ctx.Actor.Name()),
		MsgType: "INFO",
	}, nil
}
