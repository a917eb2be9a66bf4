package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// TicketABI is the slice of the Ticket contract interface this service uses.
const TicketABI = `[
  {"type":"constructor","stateMutability":"nonpayable","inputs":[
    {"name":"_name","type":"string"},{"name":"_symbol","type":"string"}]},
  {"type":"event","name":"Transfer","anonymous":false,"inputs":[
    {"indexed":true,"name":"from","type":"address"},
    {"indexed":true,"name":"to","type":"address"},
    {"indexed":true,"name":"tokenId","type":"uint256"}]},
  {"type":"function","name":"owner","stateMutability":"view","inputs":[],
    "outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"ownerOf","stateMutability":"view",
    "inputs":[{"name":"tokenId","type":"uint256"}],
    "outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view",
    "inputs":[{"name":"owner","type":"address"}],
    "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"tokenOfOwnerByIndex","stateMutability":"view",
    "inputs":[{"name":"owner","type":"address"},{"name":"index","type":"uint256"}],
    "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"tokenURI","stateMutability":"view",
    "inputs":[{"name":"tokenId","type":"uint256"}],
    "outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"ticketInfo","stateMutability":"view",
    "inputs":[{"name":"tokenId","type":"uint256"}],
    "outputs":[{"name":"occasionId","type":"uint256"},{"name":"seatNumber","type":"uint256"}]},
  {"type":"function","name":"totalOccasions","stateMutability":"view","inputs":[],
    "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getOccasion","stateMutability":"view",
    "inputs":[{"name":"_id","type":"uint256"}],
    "outputs":[
      {"name":"id","type":"uint256"},
      {"name":"name","type":"string"},
      {"name":"cost","type":"uint256"},
      {"name":"tickets","type":"uint256"},
      {"name":"maxTickets","type":"uint256"},
      {"name":"date","type":"string"},
      {"name":"time","type":"string"},
      {"name":"location","type":"string"},
      {"name":"organizer","type":"address"},
      {"name":"eventTimestamp","type":"uint256"},
      {"name":"canceled","type":"bool"},
      {"name":"occurred","type":"bool"},
      {"name":"maxResalePrice","type":"uint256"}]},
  {"type":"function","name":"isRefundable","stateMutability":"view",
    "inputs":[{"name":"tokenId","type":"uint256"}],
    "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"mint","stateMutability":"payable",
    "inputs":[{"name":"_id","type":"uint256"},{"name":"_seat","type":"uint256"}],
    "outputs":[]},
  {"type":"function","name":"refund","stateMutability":"nonpayable",
    "inputs":[{"name":"tokenId","type":"uint256"}],
    "outputs":[]},
  {"type":"function","name":"list","stateMutability":"nonpayable",
    "inputs":[
      {"name":"_name","type":"string"},
      {"name":"_cost","type":"uint256"},
      {"name":"_maxTickets","type":"uint256"},
      {"name":"_date","type":"string"},
      {"name":"_time","type":"string"},
      {"name":"_location","type":"string"},
      {"name":"_eventTimestamp","type":"uint256"},
      {"name":"_maxResalePrice","type":"uint256"}],
    "outputs":[]}
]`

// ParsedTicketABI is TicketABI parsed once at start-up.
var ParsedTicketABI = mustParseABI(TicketABI)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("chain: invalid ticket ABI: " + err.Error())
	}
	return parsed
}
