package shiftswap

import (
	"testing"

	"github.com/Ashmit12092000/ems/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedStatusTransition(t *testing.T) {
	all := []string{
		domain.SwapStatusPendingTarget, domain.SwapStatusRejectedByTarget, domain.SwapStatusPendingHOD,
		domain.SwapStatusRejectedBySystem, domain.SwapStatusApproved, domain.SwapStatusRejectedByHOD,
	}

	allowed := map[[2]string]bool{
		{domain.SwapStatusPendingTarget, domain.SwapStatusRejectedByTarget}: true,
		{domain.SwapStatusPendingTarget, domain.SwapStatusRejectedBySystem}: true,
		{domain.SwapStatusPendingTarget, domain.SwapStatusPendingHOD}:       true,
		{domain.SwapStatusPendingHOD, domain.SwapStatusApproved}:            true,
		{domain.SwapStatusPendingHOD, domain.SwapStatusRejectedByHOD}:       true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]string{from, to}], isAllowedStatusTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, isAllowedStatusTransition(domain.SwapStatusPendingTarget, domain.SwapStatusApproved))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(domain.SwapStatusPendingTarget))
	assert.False(t, isTerminal(domain.SwapStatusPendingHOD))
	for _, s := range []string{
		domain.SwapStatusRejectedByTarget, domain.SwapStatusRejectedBySystem,
		domain.SwapStatusApproved, domain.SwapStatusRejectedByHOD,
	} {
		assert.True(t, isTerminal(s), s)
		for _, next := range []string{domain.SwapStatusApproved, domain.SwapStatusPendingHOD} {
			assert.False(t, isAllowedStatusTransition(s, next))
		}
	}
}
