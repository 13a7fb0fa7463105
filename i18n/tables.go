package i18n

var zh = map[string]string{
	"actor.system": "系统",
	"actor.agent":  "AI Agent",

	"tasks.noTasks":     "当前没有可用的任务",
	"tasks.deadline":    "截止时间",
	"tasks.publisher":   "发布者",
	"tasks.reward":      "奖励",
	"tasks.taskId":      "任务ID",
	"tasks.unknownTask": "未知任务",

	"agent.noClaimedTasks": "暂无已认领的任务",

	"modal.noRequirements": "无特殊要求",

	"notification.taskClaimed":        "任务认领成功！",
	"notification.claimFailed":        "认领失败: {reason}",
	"notification.claimError":         "认领任务失败",
	"notification.alreadyClaimed":     "该任务已认领",
	"notification.taskCompleted":      "任务完成！获得 {reward} ETH",
	"notification.noTasks":            "当前没有可用的任务",
	"notification.noSuitableTask":     "没有找到合适的任务",
	"notification.workStarted":        "AI Agent已开始工作",
	"notification.startFailed":        "启动失败: {reason}",
	"notification.startError":         "启动工作失败",
	"notification.workFailed":         "执行工作周期失败",
	"notification.autoWorkStarted":    "自动工作模式已启动",
	"notification.autoWorkStopped":    "自动工作模式已停止",
	"notification.statsRefreshed":     "统计信息已刷新",
	"notification.loadFailed":         "加载失败",
	"notification.networkError":       "网络错误",
	"notification.languageChanged":    "语言已切换",
	"notification.reportExported":     "报告已导出: {url}",
	"notification.reportExportFailed": "报告导出失败",

	"network.connected":        "已连接",
	"network.disconnected":     "未连接",
	"network.connectionFailed": "连接失败",
	"network.gwei":             "Gwei",

	"log.startingWork":      "开始执行工作周期...",
	"log.foundClaimedTasks": "发现 {count} 个已认领的任务，优先执行: {ids}",
	"log.noClaimedTasks":    "没有已认领的任务，正在获取可用任务列表...",
	"log.taskClaimed":       "✅ 认领任务: {title} (任务ID: {id})",
	"log.taskExecuting":     "🔄 开始执行任务: {title}",
	"log.taskCompleted":     "🎉 完成任务: {title}",
	"log.taskReward":        "💰 获得奖励: {reward} ETH",
	"log.noAvailableTasks":  "📭 当前没有可用的任务",
	"log.noSuitableTasks":   "🔍 没有找到合适的任务",
	"log.workFailed":        "❌ 工作周期执行失败",
	"log.agentStarted":      "AI Agent开始工作",
	"log.autoWorkStarted":   "启动自动工作模式",
	"log.autoWorkStopped":   "停止自动工作模式",
	"log.loadFailed":        "加载数据失败，请检查网络连接",
	"log.reportExported":    "报告已上传: {url}",
}

var en = map[string]string{
	"actor.system": "System",
	"actor.agent":  "AI Agent",

	"tasks.noTasks":     "No available tasks",
	"tasks.deadline":    "Deadline",
	"tasks.publisher":   "Publisher",
	"tasks.reward":      "Reward",
	"tasks.taskId":      "Task ID",
	"tasks.unknownTask": "Unknown task",

	"agent.noClaimedTasks": "No claimed tasks",

	"modal.noRequirements": "No special requirements",

	"notification.taskClaimed":        "Task claimed successfully!",
	"notification.claimFailed":        "Claim failed: {reason}",
	"notification.claimError":         "Failed to claim task",
	"notification.alreadyClaimed":     "Task already claimed",
	"notification.taskCompleted":      "Task completed! Earned {reward} ETH",
	"notification.noTasks":            "No available tasks",
	"notification.noSuitableTask":     "No suitable task found",
	"notification.workStarted":        "AI Agent started working",
	"notification.startFailed":        "Start failed: {reason}",
	"notification.startError":         "Failed to start work",
	"notification.workFailed":         "Work cycle failed",
	"notification.autoWorkStarted":    "Auto work mode started",
	"notification.autoWorkStopped":    "Auto work mode stopped",
	"notification.statsRefreshed":     "Statistics refreshed",
	"notification.loadFailed":         "Load failed",
	"notification.networkError":       "Network error",
	"notification.languageChanged":    "Language switched",
	"notification.reportExported":     "Report exported: {url}",
	"notification.reportExportFailed": "Report export failed",

	"network.connected":        "Connected",
	"network.disconnected":     "Disconnected",
	"network.connectionFailed": "Connection Failed",
	"network.gwei":             "Gwei",

	"log.startingWork":      "Starting work cycle...",
	"log.foundClaimedTasks": "Found {count} claimed tasks, prioritizing: {ids}",
	"log.noClaimedTasks":    "No claimed tasks, getting available task list...",
	"log.taskClaimed":       "✅ Claimed task: {title} (Task ID: {id})",
	"log.taskExecuting":     "🔄 Executing task: {title}",
	"log.taskCompleted":     "🎉 Task completed: {title}",
	"log.taskReward":        "💰 Earned reward: {reward} ETH",
	"log.noAvailableTasks":  "📭 No available tasks",
	"log.noSuitableTasks":   "🔍 No suitable tasks found",
	"log.workFailed":        "❌ Work cycle execution failed",
	"log.agentStarted":      "AI Agent started working",
	"log.autoWorkStarted":   "Auto work mode started",
	"log.autoWorkStopped":   "Auto work mode stopped",
	"log.loadFailed":        "Failed to load data, please check network connection",
	"log.reportExported":    "Report uploaded: {url}",
}

var tables = map[string]map[string]string{
	"zh": zh,
	"en": en,
}
