package order

// Status 订单状态
// 状态机：pending → completed | cancelled，completed/cancelled是终态
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid 校验状态取值
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo 检查是否可以转换到目标状态
// 状态机设计：防止非法状态跳转（如从cancelled跳回pending）
func (s Status) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusPending:   {StatusCompleted, StatusCancelled},
		StatusCompleted: {}, // 终态
		StatusCancelled: {}, // 终态
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}
