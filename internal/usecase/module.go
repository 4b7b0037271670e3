package usecase

import "go.uber.org/fx"

// Module provides core use cases to the fx container.
var Module = fx.Provide(
	NewInputUseCase,
)
