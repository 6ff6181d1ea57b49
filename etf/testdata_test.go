package etf

// readyPayload is a captured gateway READY event: a map with atom keys,
// a large binary holding escaped JSON, SMALL_BIG_EXT snowflake ids, a
// STRING_EXT shard and the true/false/nil atoms.
var readyPayload = []byte{
	131, 116, 0, 0, 0, 4, 100, 0, 1, 100, 116, 0, 0, 0, 16, 100, 0, 6, 95, 116,
	114, 97, 99, 101, 108, 0, 0, 0, 1, 109, 0, 0, 3, 196, 91, 34, 103, 97, 116, 101,
	119, 97, 121, 45, 112, 114, 100, 45, 117, 115, 45, 101, 97, 115, 116, 49, 45, 98, 45, 99,
	104, 49, 118, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115, 34, 58, 49, 56, 51, 50, 51,
	52, 44, 34, 99, 97, 108, 108, 115, 34, 58, 91, 34, 105, 100, 95, 99, 114, 101, 97, 116,
	101, 100, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115, 34, 58, 49, 48, 51, 51, 44, 34,
	99, 97, 108, 108, 115, 34, 58, 91, 93, 125, 44, 34, 115, 101, 115, 115, 105, 111, 110, 95,
	108, 111, 111, 107, 117, 112, 95, 116, 105, 109, 101, 34, 44, 123, 34, 109, 105, 99, 114, 111,
	115, 34, 58, 51, 53, 55, 44, 34, 99, 97, 108, 108, 115, 34, 58, 91, 93, 125, 44, 34,
	115, 101, 115, 115, 105, 111, 110, 95, 108, 111, 111, 107, 117, 112, 95, 102, 105, 110, 105, 115,
	104, 101, 100, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115, 34, 58, 49, 54, 44, 34, 99,
	97, 108, 108, 115, 34, 58, 91, 93, 125, 44, 34, 100, 105, 115, 99, 111, 114, 100, 45, 115,
	101, 115, 115, 105, 111, 110, 115, 45, 112, 114, 100, 45, 50, 45, 50, 53, 34, 44, 123, 34,
	109, 105, 99, 114, 111, 115, 34, 58, 49, 55, 57, 56, 56, 51, 44, 34, 99, 97, 108, 108,
	115, 34, 58, 91, 34, 115, 116, 97, 114, 116, 95, 115, 101, 115, 115, 105, 111, 110, 34, 44,
	123, 34, 109, 105, 99, 114, 111, 115, 34, 58, 56, 54, 57, 52, 54, 44, 34, 99, 97, 108,
	108, 115, 34, 58, 91, 34, 100, 105, 115, 99, 111, 114, 100, 45, 97, 112, 105, 45, 53, 100,
	99, 100, 102, 55, 98, 99, 52, 56, 45, 114, 102, 103, 50, 115, 34, 44, 123, 34, 109, 105,
	99, 114, 111, 115, 34, 58, 55, 57, 57, 57, 55, 44, 34, 99, 97, 108, 108, 115, 34, 58,
	91, 34, 103, 101, 116, 95, 117, 115, 101, 114, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115,
	34, 58, 50, 49, 51, 54, 57, 125, 44, 34, 103, 101, 116, 95, 103, 117, 105, 108, 100, 115,
	34, 44, 123, 34, 109, 105, 99, 114, 111, 115, 34, 58, 56, 52, 56, 49, 125, 44, 34, 115,
	101, 110, 100, 95, 115, 99, 104, 101, 100, 117, 108, 101, 100, 95, 100, 101, 108, 101, 116, 105,
	111, 110, 95, 109, 101, 115, 115, 97, 103, 101, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115,
	34, 58, 49, 53, 125, 44, 34, 103, 117, 105, 108, 100, 95, 106, 111, 105, 110, 95, 114, 101,
	113, 117, 101, 115, 116, 115, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115, 34, 58, 57, 49,
	49, 125, 44, 34, 97, 117, 116, 104, 111, 114, 105, 122, 101, 100, 95, 105, 112, 95, 99, 111,
	114, 111, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115, 34, 58, 49, 53, 125, 93, 125, 93,
	125, 44, 34, 115, 116, 97, 114, 116, 105, 110, 103, 95, 103, 117, 105, 108, 100, 95, 99, 111,
	110, 110, 101, 99, 116, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115, 34, 58, 50, 51, 56,
	44, 34, 99, 97, 108, 108, 115, 34, 58, 91, 93, 125, 44, 34, 112, 114, 101, 115, 101, 110,
	99, 101, 95, 115, 116, 97, 114, 116, 101, 100, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115,
	34, 58, 52, 52, 54, 57, 50, 44, 34, 99, 97, 108, 108, 115, 34, 58, 91, 93, 125, 44,
	34, 103, 117, 105, 108, 100, 115, 95, 115, 116, 97, 114, 116, 101, 100, 34, 44, 123, 34, 109,
	105, 99, 114, 111, 115, 34, 58, 49, 55, 48, 44, 34, 99, 97, 108, 108, 115, 34, 58, 91,
	93, 125, 44, 34, 103, 117, 105, 108, 100, 115, 95, 99, 111, 110, 110, 101, 99, 116, 34, 44,
	123, 34, 109, 105, 99, 114, 111, 115, 34, 58, 50, 44, 34, 99, 97, 108, 108, 115, 34, 58,
	91, 93, 125, 44, 34, 112, 114, 101, 115, 101, 110, 99, 101, 95, 99, 111, 110, 110, 101, 99,
	116, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115, 34, 58, 52, 55, 56, 48, 57, 44, 34,
	99, 97, 108, 108, 115, 34, 58, 91, 93, 125, 44, 34, 99, 111, 110, 110, 101, 99, 116, 95,
	102, 105, 110, 105, 115, 104, 101, 100, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115, 34, 58,
	52, 55, 56, 49, 52, 44, 34, 99, 97, 108, 108, 115, 34, 58, 91, 93, 125, 44, 34, 98,
	117, 105, 108, 100, 95, 114, 101, 97, 100, 121, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115,
	34, 58, 50, 48, 44, 34, 99, 97, 108, 108, 115, 34, 58, 91, 93, 125, 44, 34, 99, 108,
	101, 97, 110, 95, 114, 101, 97, 100, 121, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115, 34,
	58, 48, 44, 34, 99, 97, 108, 108, 115, 34, 58, 91, 93, 125, 44, 34, 111, 112, 116, 105,
	109, 105, 122, 101, 95, 114, 101, 97, 100, 121, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115,
	34, 58, 49, 44, 34, 99, 97, 108, 108, 115, 34, 58, 91, 93, 125, 44, 34, 115, 112, 108,
	105, 116, 95, 114, 101, 97, 100, 121, 34, 44, 123, 34, 109, 105, 99, 114, 111, 115, 34, 58,
	48, 44, 34, 99, 97, 108, 108, 115, 34, 58, 91, 93, 125, 93, 125, 93, 125, 93, 106, 100,
	0, 11, 97, 112, 112, 108, 105, 99, 97, 116, 105, 111, 110, 116, 0, 0, 0, 2, 100, 0,
	5, 102, 108, 97, 103, 115, 98, 1, 168, 160, 0, 100, 0, 2, 105, 100, 110, 8, 0, 116,
	48, 132, 118, 50, 206, 219, 15, 100, 0, 4, 97, 117, 116, 104, 116, 0, 0, 0, 0, 100,
	0, 23, 103, 101, 111, 95, 111, 114, 100, 101, 114, 101, 100, 95, 114, 116, 99, 95, 114, 101,
	103, 105, 111, 110, 115, 108, 0, 0, 0, 5, 109, 0, 0, 0, 6, 110, 101, 119, 97, 114,
	107, 109, 0, 0, 0, 7, 117, 115, 45, 101, 97, 115, 116, 109, 0, 0, 0, 10, 117, 115,
	45, 99, 101, 110, 116, 114, 97, 108, 109, 0, 0, 0, 7, 97, 116, 108, 97, 110, 116, 97,
	109, 0, 0, 0, 8, 117, 115, 45, 115, 111, 117, 116, 104, 106, 100, 0, 19, 103, 117, 105,
	108, 100, 95, 106, 111, 105, 110, 95, 114, 101, 113, 117, 101, 115, 116, 115, 106, 100, 0, 6,
	103, 117, 105, 108, 100, 115, 108, 0, 0, 0, 7, 116, 0, 0, 0, 2, 100, 0, 2, 105,
	100, 110, 8, 0, 10, 128, 66, 127, 38, 218, 237, 12, 100, 0, 11, 117, 110, 97, 118, 97,
	105, 108, 97, 98, 108, 101, 100, 0, 4, 116, 114, 117, 101, 116, 0, 0, 0, 2, 100, 0,
	2, 105, 100, 110, 8, 0, 10, 48, 2, 232, 100, 212, 192, 13, 100, 0, 11, 117, 110, 97,
	118, 97, 105, 108, 97, 98, 108, 101, 100, 0, 4, 116, 114, 117, 101, 116, 0, 0, 0, 2,
	100, 0, 2, 105, 100, 110, 8, 0, 71, 0, 196, 181, 192, 31, 207, 13, 100, 0, 11, 117,
	110, 97, 118, 97, 105, 108, 97, 98, 108, 101, 100, 0, 4, 116, 114, 117, 101, 116, 0, 0,
	0, 2, 100, 0, 2, 105, 100, 110, 8, 0, 10, 0, 132, 73, 247, 79, 48, 14, 100, 0,
	11, 117, 110, 97, 118, 97, 105, 108, 97, 98, 108, 101, 100, 0, 4, 116, 114, 117, 101, 116,
	0, 0, 0, 2, 100, 0, 2, 105, 100, 110, 8, 0, 30, 0, 68, 93, 95, 47, 85, 14,
	100, 0, 11, 117, 110, 97, 118, 97, 105, 108, 97, 98, 108, 101, 100, 0, 4, 116, 114, 117,
	101, 116, 0, 0, 0, 2, 100, 0, 2, 105, 100, 110, 8, 0, 58, 16, 196, 98, 103, 155,
	247, 14, 100, 0, 11, 117, 110, 97, 118, 97, 105, 108, 97, 98, 108, 101, 100, 0, 4, 116,
	114, 117, 101, 116, 0, 0, 0, 2, 100, 0, 2, 105, 100, 110, 8, 0, 10, 64, 132, 71,
	0, 39, 181, 15, 100, 0, 11, 117, 110, 97, 118, 97, 105, 108, 97, 98, 108, 101, 100, 0,
	4, 116, 114, 117, 101, 106, 100, 0, 9, 112, 114, 101, 115, 101, 110, 99, 101, 115, 106, 100,
	0, 16, 112, 114, 105, 118, 97, 116, 101, 95, 99, 104, 97, 110, 110, 101, 108, 115, 106, 100,
	0, 13, 114, 101, 108, 97, 116, 105, 111, 110, 115, 104, 105, 112, 115, 106, 100, 0, 18, 114,
	101, 115, 117, 109, 101, 95, 103, 97, 116, 101, 119, 97, 121, 95, 117, 114, 108, 109, 0, 0,
	0, 35, 119, 115, 115, 58, 47, 47, 103, 97, 116, 101, 119, 97, 121, 45, 117, 115, 45, 101,
	97, 115, 116, 49, 45, 98, 46, 100, 105, 115, 99, 111, 114, 100, 46, 103, 103, 100, 0, 10,
	115, 101, 115, 115, 105, 111, 110, 95, 105, 100, 109, 0, 0, 0, 32, 48, 53, 101, 56, 50,
	50, 98, 49, 55, 101, 51, 48, 98, 101, 98, 101, 97, 55, 51, 48, 102, 51, 52, 56, 51,
	57, 51, 55, 50, 100, 57, 55, 100, 0, 12, 115, 101, 115, 115, 105, 111, 110, 95, 116, 121,
	112, 101, 100, 0, 6, 110, 111, 114, 109, 97, 108, 100, 0, 5, 115, 104, 97, 114, 100, 107,
	0, 2, 0, 1, 100, 0, 4, 117, 115, 101, 114, 116, 0, 0, 0, 10, 100, 0, 6, 97,
	118, 97, 116, 97, 114, 109, 0, 0, 0, 32, 56, 56, 98, 100, 57, 99, 101, 55, 98, 102,
	56, 56, 57, 99, 48, 100, 51, 54, 102, 98, 52, 97, 102, 100, 51, 55, 50, 53, 57, 48,
	48, 98, 100, 0, 3, 98, 111, 116, 100, 0, 4, 116, 114, 117, 101, 100, 0, 13, 100, 105,
	115, 99, 114, 105, 109, 105, 110, 97, 116, 111, 114, 109, 0, 0, 0, 4, 51, 48, 53, 53,
	100, 0, 5, 101, 109, 97, 105, 108, 100, 0, 3, 110, 105, 108, 100, 0, 5, 102, 108, 97,
	103, 115, 97, 0, 100, 0, 11, 103, 108, 111, 98, 97, 108, 95, 110, 97, 109, 101, 100, 0,
	3, 110, 105, 108, 100, 0, 2, 105, 100, 110, 8, 0, 116, 48, 132, 118, 50, 206, 219, 15,
	100, 0, 11, 109, 102, 97, 95, 101, 110, 97, 98, 108, 101, 100, 100, 0, 5, 102, 97, 108,
	115, 101, 100, 0, 8, 117, 115, 101, 114, 110, 97, 109, 101, 109, 0, 0, 0, 17, 77, 66,
	111, 116, 45, 77, 117, 115, 105, 99, 72, 111, 117, 115, 101, 45, 50, 100, 0, 8, 118, 101,
	114, 105, 102, 105, 101, 100, 100, 0, 4, 116, 114, 117, 101, 100, 0, 13, 117, 115, 101, 114,
	95, 115, 101, 116, 116, 105, 110, 103, 115, 116, 0, 0, 0, 0, 100, 0, 1, 118, 97, 10,
	100, 0, 2, 111, 112, 97, 0, 100, 0, 1, 115, 97, 1, 100, 0, 1, 116, 100, 0, 5,
	82, 69, 65, 68, 89,
}

// readyJSON is the expected DecodeToJSON output for readyPayload.
const readyJSON = `{"d":{"_trace":["[\"gateway-prd-us-east1-b-ch1v\",{\"micros\":183234,\"calls\":[\"id_created\",{\"micros\":1033,\"calls\":[]},\"session_lookup_time\",{\"micros\":357,\"calls\":[]},\"session_lookup_finished\",{\"micros\":16,\"calls\":[]},\"discord-sessions-prd-2-25\",{\"micros\":179883,\"calls\":[\"start_session\",{\"micros\":86946,\"calls\":[\"discord-api-5dcdf7bc48-rfg2s\",{\"micros\":79997,\"calls\":[\"get_user\",{\"micros\":21369},\"get_guilds\",{\"micros\":8481},\"send_scheduled_deletion_message\",{\"micros\":15},\"guild_join_requests\",{\"micros\":911},\"authorized_ip_coro\",{\"micros\":15}]}]},\"starting_guild_connect\",{\"micros\":238,\"calls\":[]},\"presence_started\",{\"micros\":44692,\"calls\":[]},\"guilds_started\",{\"micros\":170,\"calls\":[]},\"guilds_connect\",{\"micros\":2,\"calls\":[]},\"presence_connect\",{\"micros\":47809,\"calls\":[]},\"connect_finished\",{\"micros\":47814,\"calls\":[]},\"build_ready\",{\"micros\":20,\"calls\":[]},\"clean_ready\",{\"micros\":0,\"calls\":[]},\"optimize_ready\",{\"micros\":1,\"calls\":[]},\"split_ready\",{\"micros\":0,\"calls\":[]}]}]}]"],"application":{"flags":27828224,"id":"1142733646600614004"},"auth":{},"geo_ordered_rtc_regions":["newark","us-east","us-central","atlanta","us-south"],"guild_join_requests":[],"guilds":[{"id":"931640556814237706","unavailable":true},{"id":"991025447875784714","unavailable":true},{"id":"995048955215872071","unavailable":true},{"id":"1022405038922006538","unavailable":true},{"id":"1032783776184533022","unavailable":true},{"id":"1078501504119476282","unavailable":true},{"id":"1131853763506880522","unavailable":true}],"presences":[],"private_channels":[],"relationships":[],"resume_gateway_url":"wss://gateway-us-east1-b.discord.gg","session_id":"05e822b17e30bebea730f34839372d97","session_type":"normal","shard":"01","user":{"avatar":"88bd9ce7bf889c0d36fb4afd3725900b","bot":true,"discriminator":"3055","email":null,"flags":0,"global_name":null,"id":"1142733646600614004","mfa_enabled":false,"username":"MBot-MusicHouse-2","verified":true},"user_settings":{},"v":10},"op":0,"s":1,"t":"READY"}`
