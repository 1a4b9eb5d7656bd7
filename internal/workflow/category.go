package workflow

import (
	"sort"

	"github.com/berba-q/hospitality-scheduler-sub001/internal/model"
)

// Buckets 用户视角的五个命名视图
// 视图之间允许重叠：一条申请可同时出现在多个视图
type Buckets struct {
	MyRequests   []model.SwapRequest `json:"my_requests"`
	ForMe        []model.SwapRequest `json:"for_me"`
	ActionNeeded []model.SwapRequest `json:"action_needed"` // ForMe 中 CanRespond 的子集
	History      []model.SwapRequest `json:"history"`       // 规范状态为终态
	All          []model.SwapRequest `json:"all"`           // MyRequests ∪ ForMe
}

// Categorize 将用户可见的申请集合划分为五个视图
// 全函数：不抛错，畸形记录按归一放行规则正常参与划分
func (r *Resolver) Categorize(reqs []model.SwapRequest, userID string) Buckets {
	var b Buckets

	for i := range reqs {
		req := reqs[i]
		p := r.Resolve(&req, userID)

		if p.IsRequester {
			b.MyRequests = append(b.MyRequests, req)
		}
		if p.IsForMe {
			b.ForMe = append(b.ForMe, req)
			if p.CanRespond {
				b.ActionNeeded = append(b.ActionNeeded, req)
			}
		}
		if p.IsRequester || p.IsForMe {
			b.All = append(b.All, req)
		}
		if Normalize(req.RawStatus, req.SwapType).IsTerminal() {
			b.History = append(b.History, req)
		}
	}

	sortRequests(b.MyRequests)
	sortRequests(b.ForMe)
	sortRequests(b.ActionNeeded)
	sortRequests(b.History)
	sortRequests(b.All)

	return b
}

// sortRequests 展示排序：紧急程度降序，同级按创建时间最近优先
func sortRequests(reqs []model.SwapRequest) {
	sort.SliceStable(reqs, func(i, j int) bool {
		ri, rj := reqs[i].Urgency.Rank(), reqs[j].Urgency.Rank()
		if ri != rj {
			return ri > rj
		}
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})
}
