package actions

import "roguely-server/internal/engine/handlers"

// HandleRedraw просит следующий кадр заново отправить клетки окна.
func HandleRedraw(ctx handlers.Context) (handlers.Result, error) {
	ctx.Map.TriggerRedraw()
	return handlers.EmptyResult(), nil
}
