// internal/service/order/application/dto.go
package application

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"bazaar/internal/pkg/money"
	"bazaar/internal/service/order/domain"
)

// ItemInput 是下单请求中的一个行项目。
type ItemInput struct {
	ListingID string `json:"listingId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Currency  string `json:"currency"`
}

// PlaceOrderRequest 是下单用例的输入数据。
type PlaceOrderRequest struct {
	BuyerID     string            `json:"buyerId"`
	Items       []ItemInput       `json:"items"`
	PaymentData map[string]string `json:"paymentData,omitempty"`
}

// PlaceOrderResponse 是下单用例的输出数据。
// Accepted 为 false 表示订单被校验链或命令执行拒绝，这是业务结果而非错误。
type PlaceOrderResponse struct {
	OrderID  string        `json:"orderId"`
	Status   domain.Status `json:"status"`
	Total    string        `json:"total"`
	Accepted bool          `json:"accepted"`
	Message  string        `json:"message"`
}

// PaymentOutcome 是支付用例的输出数据。
type PaymentOutcome struct {
	OrderID       string        `json:"orderId"`
	Status        domain.Status `json:"status"`
	Success       bool          `json:"success"`
	TransactionID string        `json:"transactionId,omitempty"`
	Message       string        `json:"message"`
}

// toDomainItems 把传输层的行项目转换为领域对象。
func (req *PlaceOrderRequest) toDomainItems() ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(req.Items))
	for _, in := range req.Items {
		listingID, err := uuid.Parse(in.ListingID)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid listing id %q", in.ListingID)
		}
		price, err := money.New(in.UnitPrice, in.Currency)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.Item{
			ListingID: listingID,
			Quantity:  in.Quantity,
			UnitPrice: price,
		})
	}
	return items, nil
}
