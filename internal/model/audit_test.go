package model

import "testing"

func TestCanTransitionApproval(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{ApprovalStatusPending, ApprovalStatusApproved, true},
		{ApprovalStatusPending, ApprovalStatusRejected, true},
		{ApprovalStatusPending, ApprovalStatusPending, false},
		{ApprovalStatusApproved, ApprovalStatusRejected, false},
		{ApprovalStatusApproved, ApprovalStatusPending, false},
		{ApprovalStatusRejected, ApprovalStatusApproved, false},
		{ApprovalStatusRejected, ApprovalStatusPending, false},
		{"unknown", ApprovalStatusApproved, false},
	}
	for _, c := range cases {
		if got := CanTransitionApproval(c.from, c.to); got != c.want {
			t.Fatalf("CanTransitionApproval(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestResolvePaymentStatus(t *testing.T) {
	cases := []struct {
		paid  float64
		total float64
		want  string
	}{
		{0, 100, PaymentStatusPending},
		{50, 100, PaymentStatusPartial},
		{100, 100, PaymentStatusCompleted},
		{120, 100, PaymentStatusCompleted},
		{0, 0, PaymentStatusCompleted},
	}
	for _, c := range cases {
		if got := ResolvePaymentStatus(c.paid, c.total); got != c.want {
			t.Fatalf("ResolvePaymentStatus(%v, %v) = %q, want %q", c.paid, c.total, got, c.want)
		}
	}
}
