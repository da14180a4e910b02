package convex

// Package convex provides:
//
// - The closed canonical value model shared with a Convex backend (Value and
//   its variants, including Int64, ID, Set and Map)
// - The tagged JSON wire encoding that round-trips that model losslessly
//   (Marshal/Unmarshal, ToJSON/FromJSON)
// - A coercion engine mapping arbitrary host values onto the model, with a
//   strict mode for validation (ToJSONStrict, Coerce)
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put wire-level detail under internal/.
// - Localized issue messages live under i18n/, the CLI under cmd/convexval.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  payload, err := convex.Marshal(map[string]any{"channel": "general", "count": 3})
//  v, err := convex.Unmarshal(responseBody)
//  v, err := convex.DecodeFrom(convex.JSONBytes(responseBody))
//
