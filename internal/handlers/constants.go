package handlers

// User-facing error messages
const (
	msgInvalidData        = "البيانات المرسلة غير صالحة"
	msgUnauthorized       = "يجب تسجيل الدخول أولا"
	msgForbidden          = "ليس لديك صلاحية للوصول إلى هذه الصفحة"
	msgNotFound           = "العنصر المطلوب غير موجود"
	msgLoadFailure        = "تعذر تحميل البيانات"
	msgSaveFailure        = "تعذر حفظ البيانات"
	msgInvalidCredentials = "اسم المستخدم أو كلمة المرور غير صحيحة"
	msgUsernameTaken      = "اسم المستخدم مستخدم مسبقا"
	msgFamilyNotFound     = "لم يتم تسجيل بيانات العائلة بعد"
	msgFamilyExists       = "تم تسجيل بيانات العائلة مسبقا"
	msgFamilyInactive     = "العائلة غير مفعلة ولا يمكنها تقديم طلبات"
	msgInvalidStatus      = "الحالة المطلوبة غير صالحة"
	msgInvalidDate        = "صيغة التاريخ غير صالحة"
	msgSwitchNotAllowed   = "لا يمكنك التبديل بين لوحات التحكم"
	msgTooManyRequests    = "عدد كبير من المحاولات، يرجى المحاولة لاحقا"
	msgInvalidCSRF        = "رمز الحماية غير صالح"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20
