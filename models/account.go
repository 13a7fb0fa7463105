package models

// WorkerStats mirrors GET /api/worker/stats.
type WorkerStats struct {
	Address        string `json:"address"`
	Reputation     int64  `json:"reputation"`
	CompletedTasks int64  `json:"completed_tasks"`
	TotalEarnings  Wei    `json:"total_earnings"`
	IsActive       bool   `json:"is_active"`
}

// Balance mirrors GET /api/worker/balance.
type Balance struct {
	BalanceWei Wei     `json:"balance_wei"`
	BalanceETH float64 `json:"balance_eth"`
}

// NetworkInfo mirrors GET /api/network/info.
type NetworkInfo struct {
	ChainID     int64 `json:"chain_id"`
	BlockNumber int64 `json:"block_number"`
	GasPrice    Wei   `json:"gas_price"`
	IsConnected bool  `json:"is_connected"`
}

// AccountInfo mirrors GET /api/account/address.
type AccountInfo struct {
	Address string `json:"address"`
}
