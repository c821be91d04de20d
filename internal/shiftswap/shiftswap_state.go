package shiftswap

import "github.com/Ashmit12092000/ems/internal/domain"

// isAllowedStatusTransition encodes the forward-only swap chain
// requester -> target -> HOD. Terminal states have no exits.
func isAllowedStatusTransition(current, next string) bool {
	switch current {
	case domain.SwapStatusPendingTarget:
		return next == domain.SwapStatusRejectedByTarget ||
			next == domain.SwapStatusRejectedBySystem ||
			next == domain.SwapStatusPendingHOD
	case domain.SwapStatusPendingHOD:
		return next == domain.SwapStatusApproved || next == domain.SwapStatusRejectedByHOD
	default:
		return false
	}
}

func isTerminal(status string) bool {
	switch status {
	case domain.SwapStatusRejectedByTarget, domain.SwapStatusRejectedBySystem,
		domain.SwapStatusApproved, domain.SwapStatusRejectedByHOD:
		return true
	}
	return false
}
