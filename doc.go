// Package ppr reconstructs the price history of PPR funds from the workbook
// their manager publishes.
//
// The workbook lists quotes, one per row: the fund name, the unit price and
// the price date. DecodeWorkbook reads those rows into Quotes, and Build folds
// them into Histories, one Instrument per fund, each with its full series and
// its current (most recent) price.
//
// Reports are produced from an Instrument by the renderer package, in one of
// the Kind formats, and named after the instrument's Slug.
package ppr
