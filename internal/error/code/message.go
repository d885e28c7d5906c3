package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:      "成功",
	ErrUnknown:      "未知错误",
	ErrBind:         "请求参数绑定错误",
	ErrValidation:   "请求参数验证错误",
	ErrTokenInvalid: "无效的认证令牌",

	// 员工相关错误码
	ErrEmployeeNotFound:          "员工不存在",
	ErrEmployeeAlreadyExist:      "员工已存在",
	ErrEmployeePasswordIncorrect: "员工密码错误",

	// 组织架构相关错误码
	ErrDepartmentNotFound: "部门不存在",
	ErrDepartmentInUse:    "部门下仍有员工，无法删除",
	ErrPositionNotFound:   "职位不存在",
	ErrPositionInUse:      "职位下仍有员工，无法删除",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",

	// 考勤相关错误码
	ErrAttendanceNotFound:   "考勤记录不存在",
	ErrScanOutOfWindow:      "Scan falls outside the supported time window (06:00-20:00).",
	ErrAttendanceComplete:   "当日上下班打卡均已记录",
	ErrMissingConfiguration: "未配置考勤规则",
	ErrBiometricLogNotFound: "打卡原始记录不存在",

	// 考勤配置相关错误码
	ErrSettingNotFound:   "考勤配置不存在",
	ErrInvalidCredential: "密码确认失败",
	ErrInvalidTimeRange:  "上班时间必须早于下班时间",

	// 文档与抽取相关错误码
	ErrDocumentNotFound:    "文档不存在",
	ErrDocumentNotApproved: "文档尚未审批通过",
	ErrExtractionFailed:    "文本抽取失败",
	ErrEmbeddingFailed:     "向量生成失败",
	ErrIndexingFailed:      "索引写入失败",

	// 加班与备忘相关错误码
	ErrOvertimeNotFound:       "加班记录不存在",
	ErrOvertimeAlreadyDecided: "加班申请已审批，不能重复处理",
	ErrMemoNotFound:           "备忘录不存在",

	// 日历相关错误码
	ErrCategoryNotFound: "事件分类不存在",
	ErrCategoryInUse:    "Cannot delete category. It is currently being used by one or more events.",
	ErrEventNotFound:    "日历事件不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:      StatusOK,
	ErrUnknown:      StatusInternalServerError,
	ErrBind:         StatusBadRequest,
	ErrValidation:   StatusUnprocessableEntity,
	ErrTokenInvalid: StatusUnauthorized,

	// 员工相关错误码
	ErrEmployeeNotFound:          StatusNotFound,
	ErrEmployeeAlreadyExist:      StatusBadRequest,
	ErrEmployeePasswordIncorrect: StatusUnauthorized,

	// 组织架构相关错误码
	ErrDepartmentNotFound: StatusNotFound,
	ErrDepartmentInUse:    StatusUnprocessableEntity,
	ErrPositionNotFound:   StatusNotFound,
	ErrPositionInUse:      StatusUnprocessableEntity,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,

	// 考勤相关错误码
	ErrAttendanceNotFound:   StatusNotFound,
	ErrScanOutOfWindow:      StatusUnprocessableEntity,
	ErrAttendanceComplete:   StatusUnprocessableEntity,
	ErrMissingConfiguration: StatusUnprocessableEntity,
	ErrBiometricLogNotFound: StatusNotFound,

	// 考勤配置相关错误码
	ErrSettingNotFound:   StatusNotFound,
	ErrInvalidCredential: StatusUnprocessableEntity,
	ErrInvalidTimeRange:  StatusUnprocessableEntity,

	// 文档与抽取相关错误码
	ErrDocumentNotFound:    StatusNotFound,
	ErrDocumentNotApproved: StatusUnprocessableEntity,
	ErrExtractionFailed:    StatusInternalServerError,
	ErrEmbeddingFailed:     StatusInternalServerError,
	ErrIndexingFailed:      StatusInternalServerError,

	// 加班与备忘相关错误码
	ErrOvertimeNotFound:       StatusNotFound,
	ErrOvertimeAlreadyDecided: StatusUnprocessableEntity,
	ErrMemoNotFound:           StatusNotFound,

	// 日历相关错误码
	ErrCategoryNotFound: StatusNotFound,
	ErrCategoryInUse:    StatusUnprocessableEntity,
	ErrEventNotFound:    StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
