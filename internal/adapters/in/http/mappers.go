package http

import (
	"bolpurmart/internal/core/application/session"
	"bolpurmart/internal/core/application/usecases/queries"
	"bolpurmart/internal/core/ports"
)

func toSession(identity ports.Identity) Session {
	return Session{
		PartnerID: identity.PartnerID.String(),
		Email:     identity.Email,
		Token:     identity.Token,
		ExpiresAt: identity.ExpiresAt,
	}
}

func toPartner(p queries.PartnerProfile) Partner {
	return Partner{
		ID:              p.ID.String(),
		Name:            p.Name,
		Phone:           p.Phone,
		Email:           p.Email,
		VehicleType:     p.VehicleType.String(),
		VehicleNumber:   p.VehicleNumber,
		AdminApproved:   p.AdminApproved,
		Status:          p.Status.String(),
		Rating:          p.Rating,
		TotalDeliveries: p.TotalDeliveries,
		UpiID:           p.UPIID,
		AccountHolder:   p.AccountHolder,
	}
}

func toOrders(views []queries.OrderView) []Order {
	orders := make([]Order, len(views))
	for i, v := range views {
		orders[i] = Order{
			ID:                    v.ID.String(),
			CustomerPhone:         v.CustomerPhone,
			CustomerAddress:       v.CustomerAddress,
			Status:                v.Status.String(),
			PickupTime:            v.PickupTime,
			DeliveryTime:          v.DeliveryTime,
			EstimatedDeliveryTime: v.EstimatedDeliveryTime,
			CreatedAt:             v.CreatedAt,
			UpdatedAt:             v.UpdatedAt,
		}
		if v.DeliveryPartnerID != nil {
			id := v.DeliveryPartnerID.String()
			orders[i].DeliveryPartnerID = &id
		}
		if v.DeliveryFee != nil {
			paise := v.DeliveryFee.Paise()
			orders[i].DeliveryFeePaise = &paise
		}
	}
	return orders
}

func toEarnings(r queries.GetEarningsQueryResponse) Earnings {
	items := make([]Earning, len(r.Items))
	for i, e := range r.Items {
		items[i] = Earning{
			ID:          e.ID.String(),
			OrderID:     e.OrderID.String(),
			AmountPaise: e.Amount.Paise(),
			Date:        e.Date,
		}
	}
	return Earnings{Items: items, TotalPaise: r.Total.Paise()}
}

func toSessionState(st session.State) SessionState {
	out := SessionState{
		Phase:           string(st.Phase),
		AvailableOrders: toOrders(st.AvailableOrders),
		ActiveOrders:    toOrders(st.ActiveOrders),
	}
	if !st.PartnerID.IsZero() {
		out.PartnerID = st.PartnerID.String()
	}
	if st.Profile != nil {
		p := toPartner(*st.Profile)
		out.Profile = &p
	}
	if st.Err != nil {
		_, body := errorResponse(st.Err)
		out.Error = &body
	}
	return out
}
