package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Resources guarded by route policies.
const (
	ResourceEmployee     = "employee"
	ResourceAttendance   = "attendance"
	ResourceLeave        = "leave"
	ResourcePayroll      = "payroll"
	ResourceReminder     = "reminder"
	ResourceReport       = "report"
	ResourceNotification = "notification"
)

// Actions. "read_own" marks endpoints already scoped to the caller's code.
const (
	ActionRead    = "read"
	ActionReadOwn = "read_own"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionDecide  = "decide"
	ActionRun     = "run"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// NewEnforcer builds the static two-role policy set. Admins can do
// everything; employees act only on their own rows.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{RoleAdmin, ResourceEmployee, "*"},
		{RoleAdmin, ResourceAttendance, "*"},
		{RoleAdmin, ResourceLeave, "*"},
		{RoleAdmin, ResourcePayroll, "*"},
		{RoleAdmin, ResourceReminder, "*"},
		{RoleAdmin, ResourceReport, "*"},
		{RoleAdmin, ResourceNotification, "*"},

		{RoleEmployee, ResourceEmployee, ActionReadOwn},
		{RoleEmployee, ResourceAttendance, ActionCreate},
		{RoleEmployee, ResourceAttendance, ActionReadOwn},
		{RoleEmployee, ResourceLeave, ActionCreate},
		{RoleEmployee, ResourceLeave, ActionReadOwn},
		{RoleEmployee, ResourcePayroll, ActionReadOwn},
		{RoleEmployee, ResourceNotification, ActionReadOwn},
		{RoleEmployee, ResourceNotification, ActionUpdate},
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
