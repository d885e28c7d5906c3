package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusUnprocessableEntity - 422: 请求语义错误.
	StatusUnprocessableEntity = 422
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 422: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 员工相关错误码 (101xxx).
const (
	// ErrEmployeeNotFound - 404: 员工不存在.
	ErrEmployeeNotFound int = iota + 101000
	// ErrEmployeeAlreadyExist - 400: 员工已存在.
	ErrEmployeeAlreadyExist
	// ErrEmployeePasswordIncorrect - 401: 员工密码错误.
	ErrEmployeePasswordIncorrect
)

// 组织架构相关错误码 (102xxx).
const (
	// ErrDepartmentNotFound - 404: 部门不存在.
	ErrDepartmentNotFound int = iota + 102000
	// ErrDepartmentInUse - 422: 部门下仍有员工.
	ErrDepartmentInUse
	// ErrPositionNotFound - 404: 职位不存在.
	ErrPositionNotFound
	// ErrPositionInUse - 422: 职位下仍有员工.
	ErrPositionInUse
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)

// 考勤相关错误码 (106xxx).
const (
	// ErrAttendanceNotFound - 404: 考勤记录不存在.
	ErrAttendanceNotFound int = iota + 106000
	// ErrScanOutOfWindow - 422: 打卡时间超出采集窗口.
	ErrScanOutOfWindow
	// ErrAttendanceComplete - 422: 当日考勤已完整.
	ErrAttendanceComplete
	// ErrMissingConfiguration - 422: 缺少考勤配置.
	ErrMissingConfiguration
	// ErrBiometricLogNotFound - 404: 打卡原始记录不存在.
	ErrBiometricLogNotFound
)

// 考勤配置相关错误码 (107xxx).
const (
	// ErrSettingNotFound - 404: 考勤配置不存在.
	ErrSettingNotFound int = iota + 107000
	// ErrInvalidCredential - 422: 密码确认失败.
	ErrInvalidCredential
	// ErrInvalidTimeRange - 422: 上下班时间范围非法.
	ErrInvalidTimeRange
)

// 文档与抽取相关错误码 (108xxx).
const (
	// ErrDocumentNotFound - 404: 文档不存在.
	ErrDocumentNotFound int = iota + 108000
	// ErrDocumentNotApproved - 422: 文档尚未审批通过.
	ErrDocumentNotApproved
	// ErrExtractionFailed - 500: 文本抽取失败.
	ErrExtractionFailed
	// ErrEmbeddingFailed - 500: 向量生成失败.
	ErrEmbeddingFailed
	// ErrIndexingFailed - 500: 索引写入失败.
	ErrIndexingFailed
)

// 加班与备忘相关错误码 (109xxx).
const (
	// ErrOvertimeNotFound - 404: 加班记录不存在.
	ErrOvertimeNotFound int = iota + 109000
	// ErrOvertimeAlreadyDecided - 422: 加班申请已审批.
	ErrOvertimeAlreadyDecided
	// ErrMemoNotFound - 404: 备忘录不存在.
	ErrMemoNotFound
)

// 日历相关错误码 (110xxx).
const (
	// ErrCategoryNotFound - 404: 事件分类不存在.
	ErrCategoryNotFound int = iota + 110000
	// ErrCategoryInUse - 422: 事件分类正在被使用.
	ErrCategoryInUse
	// ErrEventNotFound - 404: 日历事件不存在.
	ErrEventNotFound
)
