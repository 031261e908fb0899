package mellat

import "github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"

// Codes with special handling in the lifecycle
const (
	CodeSuccess            = "0"
	CodeCancelled          = "17"
	CodeAlreadyVerified    = "43"
	CodeAlreadySettled     = "45"
	CodeIncompleteCallback = "INCOMPLETE_CALLBACK"
)

func msg(fa, en string) entity.LocalizedMessage {
	return entity.LocalizedMessage{FA: fa, EN: en}
}

var codeTable = entity.CodeTable{
	CodeSuccess: {Kind: entity.OutcomeSuccess, Message: msg("تراکنش با موفقیت انجام شد", "Transaction completed successfully")},

	"11":          {Kind: entity.OutcomeDeclined, Message: msg("شماره کارت نامعتبر است", "Invalid card number")},
	"12":          {Kind: entity.OutcomeDeclined, Message: msg("موجودی کافی نیست", "Insufficient funds")},
	"13":          {Kind: entity.OutcomeDeclined, Message: msg("رمز نادرست است", "Incorrect PIN")},
	"14":          {Kind: entity.OutcomeDeclined, Message: msg("تعداد دفعات وارد کردن رمز بیش از حد مجاز است", "PIN entry attempts exceeded")},
	"15":          {Kind: entity.OutcomeDeclined, Message: msg("کارت نامعتبر است", "Invalid card")},
	"16":          {Kind: entity.OutcomeDeclined, Message: msg("دفعات برداشت وجه بیش از حد مجاز است", "Withdrawal count limit exceeded")},
	CodeCancelled: {Kind: entity.OutcomeCancelled, Message: msg("کاربر از انجام تراکنش منصرف شده است", "The customer cancelled the payment")},
	"18":          {Kind: entity.OutcomeDeclined, Message: msg("تاریخ انقضای کارت گذشته است", "Card expired")},
	"19":          {Kind: entity.OutcomeDeclined, Message: msg("مبلغ برداشت وجه بیش از حد مجاز است", "Withdrawal amount limit exceeded")},
	"111":         {Kind: entity.OutcomeDeclined, Message: msg("صادر کننده کارت نامعتبر است", "Invalid card issuer")},
	"112":         {Kind: entity.OutcomeBankUnavailable, Message: msg("خطای سوییچ صادر کننده کارت", "Card issuer switch error"), Retryable: true},
	"113":         {Kind: entity.OutcomeBankUnavailable, Message: msg("پاسخی از صادر کننده کارت دریافت نشد", "No response from the card issuer"), Retryable: true},
	"114":         {Kind: entity.OutcomeDeclined, Message: msg("دارنده کارت مجاز به انجام این تراکنش نیست", "The cardholder is not allowed to perform this transaction")},

	"21": {Kind: entity.OutcomeMerchantError, Message: msg("پذیرنده نامعتبر است", "Invalid merchant")},
	"23": {Kind: entity.OutcomeSecurity, Message: msg("خطای امنیتی رخ داده است", "Security error")},
	"24": {Kind: entity.OutcomeMerchantError, Message: msg("اطلاعات کاربری پذیرنده نامعتبر است", "Invalid merchant credentials")},
	"25": {Kind: entity.OutcomeInvalidRequest, Message: msg("مبلغ نامعتبر است", "Invalid amount")},

	"31": {Kind: entity.OutcomeInvalidRequest, Message: msg("پاسخ نامعتبر است", "Invalid response")},
	"32": {Kind: entity.OutcomeInvalidRequest, Message: msg("فرمت اطلاعات وارد شده صحیح نمی باشد", "Invalid input format")},
	"33": {Kind: entity.OutcomeDeclined, Message: msg("حساب نامعتبر است", "Invalid account")},
	"34": {Kind: entity.OutcomeBankUnavailable, Message: msg("خطای سیستمی", "System error"), Retryable: true},
	"35": {Kind: entity.OutcomeInvalidRequest, Message: msg("تاریخ نامعتبر است", "Invalid date")},

	"41":                {Kind: entity.OutcomeDuplicate, Message: msg("شماره درخواست تکراری است", "Duplicate order id")},
	"42":                {Kind: entity.OutcomeNotFound, Message: msg("تراکنش Sale یافت نشد", "Sale transaction not found")},
	CodeAlreadyVerified: {Kind: entity.OutcomeAlreadyVerified, Message: msg("قبلا درخواست Verify داده شده است", "Verification was already requested")},
	"44":                {Kind: entity.OutcomeNotFound, Message: msg("درخواست Verify یافت نشد", "Verify request not found")},
	CodeAlreadySettled:  {Kind: entity.OutcomeAlreadySettled, Message: msg("تراکنش Settle شده است", "Transaction already settled")},
	"46":                {Kind: entity.OutcomeDeclined, Message: msg("تراکنش Settle نشده است", "Transaction has not been settled")},
	"47":                {Kind: entity.OutcomeNotFound, Message: msg("تراکنش Settle یافت نشد", "Settle transaction not found")},
	"48":                {Kind: entity.OutcomeReversed, Message: msg("تراکنش Reverse شده است", "Transaction was reversed")},
	"49":                {Kind: entity.OutcomeNotFound, Message: msg("تراکنش Refund یافت نشد", "Refund transaction not found")},

	"412": {Kind: entity.OutcomeInvalidRequest, Message: msg("شناسه قبض نادرست است", "Invalid bill id")},
	"413": {Kind: entity.OutcomeInvalidRequest, Message: msg("شناسه پرداخت نادرست است", "Invalid payment id")},
	"414": {Kind: entity.OutcomeInvalidRequest, Message: msg("سازمان صادر کننده قبض نامعتبر است", "Invalid bill issuer")},
	"415": {Kind: entity.OutcomeExpired, Message: msg("زمان جلسه کاری به پایان رسیده است", "The payment session expired")},
	"416": {Kind: entity.OutcomeBankUnavailable, Message: msg("خطا در ثبت اطلاعات", "Error while recording data"), Retryable: true},
	"417": {Kind: entity.OutcomeInvalidRequest, Message: msg("شناسه پرداخت کننده نامعتبر است", "Invalid payer id")},
	"418": {Kind: entity.OutcomeMerchantError, Message: msg("اشکال در تعریف اطلاعات مشتری", "Customer profile error")},
	"419": {Kind: entity.OutcomeDeclined, Message: msg("تعداد دفعات ورود اطلاعات از حد مجاز گذشته است", "Too many input attempts")},
	"421": {Kind: entity.OutcomeMerchantError, Message: msg("IP نامعتبر است", "Invalid IP address")},

	"51": {Kind: entity.OutcomeDuplicate, Message: msg("تراکنش تکراری است", "Duplicate transaction")},
	"54": {Kind: entity.OutcomeNotFound, Message: msg("تراکنش مرجع موجود نیست", "Reference transaction does not exist")},
	"55": {Kind: entity.OutcomeInvalidRequest, Message: msg("تراکنش نامعتبر است", "Invalid transaction")},
	"61": {Kind: entity.OutcomeBankUnavailable, Message: msg("خطا در واریز", "Deposit error"), Retryable: true},

	CodeIncompleteCallback: {Kind: entity.OutcomeInvalidRequest, Message: msg("اطلاعات بازگشتی از بانک ناقص است", "The bank callback is incomplete")},
}
