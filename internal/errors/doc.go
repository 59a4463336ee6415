// Package errors provides the coded error type used across the weapon deck service.
//
// Every layer returns *Error values (or wraps lower errors with Wrap) so the
// handler layer can translate them into gRPC status codes without guessing.
//
// # Basic Usage
//
//	err := errors.NotFound("deck not built for tier")
//	err := errors.InvalidArgumentf("unknown tier: %s", tier)
//
// Adding metadata:
//
//	err := errors.FailedPrecondition("card is still in the deck").
//	    WithMeta("instance_id", id)
//
// Wrapping:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load session state")
//	}
//
// # Expected outcomes are not errors
//
// An empty deck on draw and a full inventory slot are results, not errors.
// Orchestrators report them through their output types and keep errors for
// invalid input, missing state and storage failures.
//
// # Catalog inconsistency
//
// State that references an instance the catalog does not know, or a count
// override larger than the minted copies, is reported with
// CatalogInconsistency. Callers recover by forcing a catalog re-import.
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return NotFound / AlreadyExists / Aborted for storage outcomes
//   - Wrap driver errors with context
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Check preconditions and return FailedPrecondition errors
//
// Handler layer:
//   - Convert errors with ToGRPCError
package errors
