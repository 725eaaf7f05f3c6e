// Package errors provides coded, wrappable errors for forge-api.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("item not found")
//	err := errors.InvalidArgumentf("unknown item type: %s", itemType)
//
// Adding metadata:
//
//	err := errors.NotFound("item not found").
//	    WithMeta("item_id", itemID)
//
// Wrapping errors:
//
//	if err := repo.Get(ctx, id); err != nil {
//	    return errors.Wrap(err, "failed to get item")
//	}
//
// Changing error semantics at a boundary:
//
//	if err := redisClient.Get(ctx, key).Err(); err != nil {
//	    if err == redis.Nil {
//	        return errors.WrapWithCode(err, errors.CodeNotFound, "item not found")
//	    }
//	    return errors.Wrap(err, "redis get failed")
//	}
//
// # Error Checking
//
//	if errors.IsNotFound(err) {
//	    // handle missing resource
//	}
//	code := errors.GetCode(err)
//	meta := errors.GetMeta(err)
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("level", input.Level, 1, 20, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer Guidelines
//
// Repositories return NotFound/AlreadyExists with the relevant IDs in
// metadata and wrap storage errors with context. Orchestrators validate
// inputs into InvalidArgument, check preconditions into
// FailedPrecondition, and wrap repository errors with business context.
package errors
