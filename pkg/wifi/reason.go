package wifi

import "fmt"

// ReasonCode is an IEEE 802.11 deauthentication/disassociation reason code.
type ReasonCode uint16

// Reason codes the client-mode core looks at. See IEEE 802.11-2016 table 9-45.
const (
	ReasonUnspecified             ReasonCode = 1
	ReasonPrevAuthNotValid        ReasonCode = 2
	ReasonDeauthLeaving           ReasonCode = 3
	ReasonDisassocDueToInactivity ReasonCode = 4
	ReasonClass2FrameFromNonAuth  ReasonCode = 6
	ReasonClass3FrameFromNonAssoc ReasonCode = 7
	ReasonDisassocStaHasLeft      ReasonCode = 8
	ReasonStaReqAssocWithoutAuth  ReasonCode = 9
	ReasonMichaelMICFailure       ReasonCode = 14
	ReasonFourWayHandshakeTimeout ReasonCode = 15
	ReasonGroupKeyUpdateTimeout   ReasonCode = 16
	ReasonInvalidGroupCipher      ReasonCode = 18
	ReasonInvalidPairwiseCipher   ReasonCode = 19
	ReasonIEEE8021XAuthFailed     ReasonCode = 23
	ReasonDisassocLowAck          ReasonCode = 34
)

var reasonNames = map[ReasonCode]string{
	ReasonUnspecified:             "UNSPECIFIED",
	ReasonPrevAuthNotValid:        "PREV_AUTH_NOT_VALID",
	ReasonDeauthLeaving:           "DEAUTH_LEAVING",
	ReasonDisassocDueToInactivity: "DISASSOC_DUE_TO_INACTIVITY",
	ReasonClass2FrameFromNonAuth:  "CLASS2_FRAME_FROM_NONAUTH_STA",
	ReasonClass3FrameFromNonAssoc: "CLASS3_FRAME_FROM_NONASSOC_STA",
	ReasonDisassocStaHasLeft:      "DISASSOC_STA_HAS_LEFT",
	ReasonStaReqAssocWithoutAuth:  "STA_REQ_ASSOC_WITHOUT_AUTH",
	ReasonMichaelMICFailure:       "MICHAEL_MIC_FAILURE",
	ReasonFourWayHandshakeTimeout: "4WAY_HANDSHAKE_TIMEOUT",
	ReasonGroupKeyUpdateTimeout:   "GROUP_KEY_UPDATE_TIMEOUT",
	ReasonInvalidGroupCipher:      "INVALID_GROUP_CIPHER",
	ReasonInvalidPairwiseCipher:   "INVALID_PAIRWISE_CIPHER",
	ReasonIEEE8021XAuthFailed:     "IEEE_802_1X_AUTH_FAILED",
	ReasonDisassocLowAck:          "DISASSOC_LOW_ACK",
}

// String returns the reason name, or the numeric code if unknown.
func (r ReasonCode) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("REASON_%d", uint16(r))
}
