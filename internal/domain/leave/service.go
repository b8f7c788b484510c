package leave

import "context"

type LeaveService interface {
	Submit(ctx context.Context, req SubmitRequest) (RequestResponse, error)
	Decide(ctx context.Context, req DecideRequest) (RequestResponse, error)
	Cancel(ctx context.Context, requestID, cancelledBy string) (RequestResponse, error)
	ListRequests(ctx context.Context, employeeID string) ([]RequestResponse, error)
	ListBalances(ctx context.Context, employeeID string) ([]BalanceResponse, error)
	SetBalance(ctx context.Context, req SetBalanceRequest) (BalanceResponse, error)
}
