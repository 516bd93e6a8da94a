// Package ui contains the Bubble Tea program that edits image tags in a
// service-definition file. The Model type focuses on message orchestration,
// while dedicated helpers own key routing, text input, fetching and rendering.
//
// Message flow:
//   - Bubble Tea reads the terminal on its own goroutine and delivers key
//     events to Model.Update through its message queue, one at a time.
//   - Update routes each message through a typed handler registry. Key
//     presses are mapped to actions (internal/ui/keys.go) and dispatched by
//     the active Mode: EditRepo, SelectTag or SelectService.
//   - Tag fetches never run inside Update. The command bus
//     (internal/ui/command) returns a tea.Cmd that performs the request and
//     answers with a command.TagsLoaded message through the same queue as key
//     input. Each fetch carries a sequence number and cancels its
//     predecessor; results that are no longer current are dropped.
//
// State ownership:
//   - Model owns every widget (internal/ui/widget): the repository entry, the
//     tag list, the details and the info line. Widgets never reference each
//     other; values move between them only inside Model's handlers.
//   - The service-definition file is held by a compose.File. A nil file puts
//     the model in degraded mode, where service selection is skipped.
//
// Errors from normalizing, fetching, selecting or saving are rendered into the
// tag list or the info line and never end the program. Only the quit keys do.
package ui
