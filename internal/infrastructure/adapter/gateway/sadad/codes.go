package sadad

import "github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"

// Codes produced locally when the bank's answer is unusable
const (
	CodeSuccess         = "0"
	CodeInvalidResponse = "INVALID_RESPONSE"
	CodeNotCommitted    = "NOT_COMMITTED"
)

func msg(fa, en string) entity.LocalizedMessage {
	return entity.LocalizedMessage{FA: fa, EN: en}
}

func retry(kind entity.OutcomeKind, m entity.LocalizedMessage) entity.CodeEntry {
	return entity.CodeEntry{Kind: kind, Message: m, Retryable: true}
}

var codeTable = entity.CodeTable{
	CodeSuccess: {Kind: entity.OutcomeSuccess, Message: msg("تراکنش با موفقیت انجام شد", "Transaction completed successfully")},
	"3":         {Kind: entity.OutcomeMerchantError, Message: msg("پذیرنده فروشگاهی نامعتبر است", "Invalid merchant")},
	"23":        {Kind: entity.OutcomeSecurity, Message: msg("خطای امنیتی رخ داده است", "Security error")},
	"58":        {Kind: entity.OutcomeMerchantError, Message: msg("انجام تراکنش توسط این پایانه مجاز نمی باشد", "The terminal is not allowed to perform this transaction")},
	"61":        {Kind: entity.OutcomeDeclined, Message: msg("مبلغ تراکنش از حد مجاز بالاتر است", "Amount exceeds the allowed limit")},

	"1000": {Kind: entity.OutcomeInvalidRequest, Message: msg("ترتیب پارامترهای ارسالی اشتباه می باشد", "Request parameters are in the wrong order")},
	"1001": {Kind: entity.OutcomeInvalidRequest, Message: msg("پارامترهای پرداخت اشتباه می باشد", "Invalid payment parameters")},
	"1002": {Kind: entity.OutcomeBankUnavailable, Message: msg("خطا در سیستم، تراکنش ناموفق", "System error, transaction failed")},
	"1003": {Kind: entity.OutcomeMerchantError, Message: msg("IP پذیرنده اشتباه است", "Invalid merchant IP address")},
	"1004": {Kind: entity.OutcomeMerchantError, Message: msg("شماره پذیرنده اشتباه است", "Invalid merchant number")},
	"1005": retry(entity.OutcomeBankUnavailable, msg("خطای دسترسی، لطفا بعدا تلاش فرمایید", "Access error, please try again later")),
	"1006": {Kind: entity.OutcomeBankUnavailable, Message: msg("خطا در سیستم", "System error")},
	"1011": {Kind: entity.OutcomeDuplicate, Message: msg("درخواست تکراری، شماره سفارش تکراری می باشد", "Duplicate request, the order id was already used")},
	"1012": {Kind: entity.OutcomeMerchantError, Message: msg("اطلاعات پذیرنده صحیح نیست", "Incorrect merchant information")},
	"1015": {Kind: entity.OutcomeUnknown, Message: msg("پاسخ خطای نامشخص از سمت مرکز", "Unspecified error from the switch")},
	"1017": {Kind: entity.OutcomeInvalidRequest, Message: msg("مبلغ درخواستی از حد مجاز تعریف شده برای این پذیرنده بیشتر است", "Amount exceeds the merchant limit")},
	"1018": {Kind: entity.OutcomeMerchantError, Message: msg("اشکال در تاریخ و زمان سیستم", "System date and time error")},
	"1019": {Kind: entity.OutcomeMerchantError, Message: msg("امکان پرداخت از طریق سیستم شتاب برای این پذیرنده وجود ندارد", "Shetab payments are not enabled for this merchant")},
	"1020": {Kind: entity.OutcomeMerchantError, Message: msg("پذیرنده غیرفعال شده است", "Merchant is disabled")},
	"1023": {Kind: entity.OutcomeInvalidRequest, Message: msg("آدرس بازگشت پذیرنده نامعتبر است", "Invalid merchant return URL")},
	"1024": {Kind: entity.OutcomeInvalidRequest, Message: msg("مهر زمانی پذیرنده نامعتبر است", "Invalid merchant timestamp")},
	"1025": {Kind: entity.OutcomeSecurity, Message: msg("امضای تراکنش نامعتبر است", "Invalid transaction signature")},
	"1026": {Kind: entity.OutcomeInvalidRequest, Message: msg("شماره سفارش تراکنش نامعتبر است", "Invalid order id")},
	"1027": {Kind: entity.OutcomeMerchantError, Message: msg("شماره پذیرنده نامعتبر است", "Invalid merchant id")},
	"1028": {Kind: entity.OutcomeMerchantError, Message: msg("شماره ترمینال پذیرنده نامعتبر است", "Invalid terminal id")},
	"1029": {Kind: entity.OutcomeSecurity, Message: msg("آدرس IP پرداخت در محدوده آدرس های معتبر پذیرنده نیست", "Payment IP address is outside the merchant's allowed range")},
	"1030": {Kind: entity.OutcomeSecurity, Message: msg("دامنه پرداخت در محدوده دامنه های معتبر پذیرنده نیست", "Payment domain is outside the merchant's allowed domains")},
	"1031": {Kind: entity.OutcomeExpired, Message: msg("مهلت زمانی پرداخت به پایان رسیده است", "The payment time limit has passed")},
	"1032": {Kind: entity.OutcomeDeclined, Message: msg("پرداخت با این کارت برای این پذیرنده امکان پذیر نیست", "This card cannot be used with this merchant")},
	"1033": {Kind: entity.OutcomeMerchantError, Message: msg("به علت مشکل در سایت پذیرنده، پرداخت غیرفعال شده است", "Payments are disabled because of a problem with the merchant site")},
	"1036": {Kind: entity.OutcomeInvalidRequest, Message: msg("اطلاعات اضافی ارسال نشده یا دارای اشکال است", "Additional data is missing or invalid")},
	"1037": {Kind: entity.OutcomeMerchantError, Message: msg("شماره پذیرنده یا شماره ترمینال صحیح نمی باشد", "Incorrect merchant or terminal id")},
	"1053": {Kind: entity.OutcomeSecurity, Message: msg("درخواست معتبر از سمت پذیرنده صورت نگرفته است", "The request did not come from the merchant")},
	"1055": {Kind: entity.OutcomeInvalidRequest, Message: msg("مقدار غیرمجاز در ورود اطلاعات", "Invalid input value")},
	"1056": retry(entity.OutcomeBankUnavailable, msg("سیستم موقتا قطع می باشد، لطفا بعدا تلاش فرمایید", "The system is temporarily down, please try again later")),
	"1058": retry(entity.OutcomeBankUnavailable, msg("سرویس پرداخت اینترنتی خارج از سرویس می باشد، لطفا بعدا تلاش فرمایید", "The internet payment service is out of service, please try again later")),
	"1061": {Kind: entity.OutcomeBankUnavailable, Message: msg("اشکال در تولید کد یکتا، لطفا عملیات پرداخت را مجددا انجام دهید", "Could not generate a unique key, please start the payment again")},
	"1064": retry(entity.OutcomeBankUnavailable, msg("لطفا مجددا سعی بفرمایید", "Please try again")),
	"1065": retry(entity.OutcomeBankUnavailable, msg("ارتباط ناموفق، لطفا چند لحظه دیگر مجددا سعی کنید", "Connection failed, please try again in a moment")),
	"1066": {Kind: entity.OutcomeBankUnavailable, Message: msg("سیستم سرویس دهی پرداخت موقتا غیرفعال شده است", "The payment service is temporarily disabled")},
	"1068": {Kind: entity.OutcomeBankUnavailable, Message: msg("به علت بروزرسانی، سیستم موقتا قطع می باشد", "The system is temporarily down for an update")},
	"1072": {Kind: entity.OutcomeInvalidRequest, Message: msg("خطا در پردازش پارامترهای اختیاری پذیرنده", "Error processing optional merchant parameters")},
	"1101": {Kind: entity.OutcomeInvalidRequest, Message: msg("مبلغ تراکنش نامعتبر است", "Invalid transaction amount")},
	"1103": {Kind: entity.OutcomeInvalidRequest, Message: msg("توکن ارسالی نامعتبر است", "Invalid token")},
	"1104": {Kind: entity.OutcomeMerchantError, Message: msg("اطلاعات تسهیم صحیح نیست", "Invalid settlement split information")},

	CodeInvalidResponse: {Kind: entity.OutcomeUnknown, Message: msg("پاسخ دریافت شده از بانک نامعتبر است", "The bank returned an invalid response")},
	CodeNotCommitted:    {Kind: entity.OutcomeDeclined, Message: msg("تراکنش توسط بانک تایید نشد", "The bank did not commit the transaction")},
}
