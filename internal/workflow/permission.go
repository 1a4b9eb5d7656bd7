package workflow

import "github.com/berba-q/hospitality-scheduler-sub001/internal/model"

// Permissions 一条申请相对于某个用户的派生能力标记
type Permissions struct {
	IsRequester bool `json:"is_requester"`
	IsForMe     bool `json:"is_for_me"` // 用户是指定目标或被指派候选人
	CanRespond  bool `json:"can_respond"`
	CanCancel   bool `json:"can_cancel"`
}

// Resolver 权限解析器
// 可响应状态集按类型可配置（上游对 specific 在 manager_final_approval
// 下能否响应存在两种行为，默认放行）
type Resolver struct {
	specificRespondable map[model.Status]bool
	autoRespondable     map[model.Status]bool
}

// ResolverOption Resolver 可选配置
type ResolverOption func(*Resolver)

// WithoutSpecificFinalApprovalRespond 关闭 specific 在 manager_final_approval 下的响应能力
func WithoutSpecificFinalApprovalRespond() ResolverOption {
	return func(r *Resolver) {
		delete(r.specificRespondable, model.StatusManagerFinalApproval)
	}
}

// NewResolver 创建权限解析器（默认可响应状态集）
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		specificRespondable: map[model.Status]bool{
			model.StatusPending:              true,
			model.StatusAwaitingTarget:       true,
			model.StatusManagerFinalApproval: true,
		},
		autoRespondable: map[model.Status]bool{
			model.StatusPending:        true,
			model.StatusAwaitingTarget: true,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve 计算用户对一条申请的角色关系与能力标记
//
// 角色判定：上游 user_role 提示存在时优先（上游可能应用委托等
// 本地不可见的规则），缺失时回退到本地 ID 匹配。
// CanRespond 仅为界面建议值，权威校验始终在上游完成。
func (r *Resolver) Resolve(req *model.SwapRequest, userID string) Permissions {
	var p Permissions

	switch req.UserRole {
	case model.RoleRequester:
		p.IsRequester = true
	case model.RoleTarget, model.RoleAssigned:
		p.IsForMe = true
	default:
		// 无提示：本地身份匹配
		p.IsRequester = req.RequestingStaffID == userID
		if cp := req.CounterpartID(); cp != nil && *cp == userID {
			p.IsForMe = true
		}
	}

	status := Normalize(req.RawStatus, req.SwapType)

	if p.IsForMe && req.Acceptance() == nil {
		respondable := r.specificRespondable
		if req.SwapType == model.SwapTypeAuto {
			respondable = r.autoRespondable
		}
		p.CanRespond = respondable[status]
	}

	if p.IsRequester {
		p.CanCancel = status == model.StatusPending || status == model.StatusAwaitingTarget
	}

	return p
}
