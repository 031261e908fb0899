package handler

import (
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
)

// errorMessages holds the customer-facing text for each API error code
var errorMessages = map[int]entity.LocalizedMessage{
	errs.CodeInvalidRequest:       {FA: "درخواست نامعتبر است", EN: "Invalid request"},
	errs.CodeInvalidAmount:        {FA: "مبلغ پرداخت نامعتبر است", EN: "Invalid payment amount"},
	errs.CodeUnknownGateway:       {FA: "درگاه پرداخت پشتیبانی نمی شود", EN: "Unsupported payment gateway"},
	errs.CodeInvalidCallback:      {FA: "پارامترهای بازگشت از بانک نامعتبر است", EN: "Invalid callback parameters"},
	errs.CodeInvalidTransactionID: {FA: "شناسه تراکنش نامعتبر است", EN: "Invalid transaction ID"},
	errs.CodeInvalidCallbackURL:   {FA: "آدرس بازگشت نامعتبر است", EN: "Invalid callback URL"},
	errs.CodeTransactionNotFound:  {FA: "تراکنش یافت نشد", EN: "Transaction not found"},
	errs.CodeStatePrecondition:    {FA: "وضعیت تراکنش اجازه این عملیات را نمی دهد", EN: "The transaction is not in a state that allows this operation"},
	errs.CodeCallbackMismatch:     {FA: "اطلاعات بازگشتی با تراکنش مطابقت ندارد", EN: "The callback does not match the transaction"},
	errs.CodePaymentDeclined:      {FA: "پرداخت ناموفق بود", EN: "The payment failed"},
	errs.CodeResourceLocked:       {FA: "تراکنش در حال پردازش است", EN: "The transaction is being processed"},
	errs.CodeInternalServer:       {FA: "خطای داخلی سرور", EN: "Internal server error"},
	errs.CodeBankUnavailable:      entity.BankUnavailableMessage,
	errs.CodeGatewayMisconfigured: {FA: "درگاه پرداخت در دسترس نیست", EN: "The payment gateway is not available"},
}

// successMessages holds the text shown after a callback completed without error
var successMessages = map[entity.Status]entity.LocalizedMessage{
	entity.StatusVerified: {FA: "پرداخت با موفقیت انجام شد", EN: "Payment completed successfully"},
	entity.StatusSettled:  {FA: "پرداخت با موفقیت انجام شد", EN: "Payment completed successfully"},
}

func errorMessage(code int) entity.LocalizedMessage {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return errorMessages[errs.CodeInternalServer]
}
