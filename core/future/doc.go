// Package future provides the lazy asynchronous pipeline used by the
// reconciliation engine.
//
// A Future describes a computation that yields exactly one value or one error
// each time it is run. Nothing happens until Run is called; composing futures
// with Map, Chain, ChainRej or Observe only describes the work.
//
// # Sequencing
//
//   - Chain / Waterfall: each step consumes the previous result, first failure stops the pipeline.
//   - Series: steps run strictly in order, their results are ignored.
//   - Iff, Tap, Lift, SwallowError, IgnoreValues: combinators for building steps.
//
// # Parallelism
//
// Parallel is the only combinator that runs futures concurrently. It bounds
// the number of in-flight futures and returns results in input order.
//
// # Usage
//
//	inspect := future.New(func(ctx context.Context) (Document, error) {
//	    return client.Inspect(ctx, name)
//	})
//	up := future.Waterfall(ensure, future.IgnoreValues[Document](inspect))
//	doc, err := up(desired).Run(ctx)
package future
