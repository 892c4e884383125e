// Package flows contains the pure decision flows behind the public Gate. The root
// package builds dependency structs once and delegates per-request evaluation here,
// keeping the decision logic free of transport concerns and directly testable.
package flows
