package httptransport

import "expvar"

var (
	metricBetsTotal      = expvar.NewInt("bets_total")
	metricBetErrorsTotal = expvar.NewInt("bet_errors_total")
	metricBetWinsTotal   = expvar.NewInt("bet_wins_total")

	metricDepositsTotal            = expvar.NewInt("deposits_total")
	metricWithdrawalRequestsTotal  = expvar.NewInt("withdrawal_requests_total")
	metricWithdrawalApprovalsTotal = expvar.NewInt("withdrawal_approvals_total")
	metricWithdrawalRejectsTotal   = expvar.NewInt("withdrawal_rejects_total")
)
