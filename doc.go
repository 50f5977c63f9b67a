// Package depot turns a personal investment activity log and a set of
// historical daily prices into daily portfolio tables ready for
// visualization.
//
// The core is a purely sequential batch pipeline:
//   - Inventory: cumulative per-asset holdings on every calendar day,
//     derived from buy/sell/dividend events.
//   - Valuation: holdings joined with daily close prices into per-asset
//     and total market values.
//   - Index: per-asset returns compounded into indices, and a portfolio
//     index built from previous-day-weighted returns, compared against a
//     benchmark.
//   - Drawdown: peak-to-trough decline for the portfolio index and for
//     every asset's price series.
//   - Total return: cumulative buys, sells and cash dividends combined
//     with market value into a capital-adjusted return.
//   - Unrealized gains: FIFO cost basis of the currently held volume as
//     of the latest date.
//
// Each stage consumes the previous stage's table and produces a new one;
// nothing is computed twice and no stage mutates its input. Price
// retrieval and file parsing live in collaborator packages; the engine
// itself never blocks on external resources.
//
// This package is the foundational logic for the `dpt` command-line tool.
package depot
