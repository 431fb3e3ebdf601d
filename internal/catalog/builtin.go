package catalog

import (
	"fmt"
	"net/url"
)

type preferredSkin struct {
	Weapon      string
	Skin        string
	FallbackURL string
}

func (p preferredSkin) fallbackImage() string {
	if p.FallbackURL != "" {
		return p.FallbackURL
	}
	return fmt.Sprintf("https://placehold.co/256x192/1a1a2e/f5a623?text=%s", url.QueryEscape(p.Weapon))
}

func (p preferredSkin) fallback(idx int) Skin {
	return Skin{
		ID:     fmt.Sprintf("fallback-%d", idx),
		Name:   p.Weapon + " | " + p.Skin,
		Weapon: p.Weapon,
		Image:  p.fallbackImage(),
		Rarity: "covert",
	}
}

// fallbackSkins is the built-in set served when every dataset source fails.
func fallbackSkins() []Skin {
	out := make([]Skin, 0, SkinCount)
	for i, pref := range preferredSkins {
		out = append(out, pref.fallback(i))
	}
	return out
}

// preferredSkins is the curated board line-up with known Steam icon paths.
var preferredSkins = []preferredSkin{
	{Weapon: "AWP", Skin: "Dragon Lore", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgpot621FAR17PLfYQJK9cyzhr-KmsjwPKvBmm5u5cB1g_zMu4qm2gDj_RNqaj-gcYOVIANoMF6G_wfswuu808Pt6prAzHV9-n51gg5bSbk"},
	{Weapon: "M4A4", Skin: "Howl", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgpou-6kejhz2v_Nfz5H_uO1gb-Gw_alIITCmX5d_MR6j_v--YXygED6_0VuZzr3ctWUdlI2aAqF_VK5wOq5h5Xv6prBn3dh6SI8pSGKUvIjNg"},
	{Weapon: "AK-47", Skin: "Fire Serpent", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgpot7HxfDhjxszJemkV09-5lpKKqPrxN7LEmyVQ7MEpiLuSrYmnjVe1-hRvY2n3doKVdgU9YlyE8li-x-buhMTvvZqfwXZqsyY8pSGKsECf0Q"},
	{Weapon: "M4A1-S", Skin: "Printstream", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgpou-6kejhz2v_Nfz5H_uO-jb-NmvLxDLbUkmJE5Yt3j7iQoN-l3wLj_RI-YT3zcI6XJgVoMF7S_lS3wL291JK1vMjNyXsw6Clz5XeIzkCy1R8ZbONxxavI-GGvkw"},
	{Weapon: "Desert Eagle", Skin: "Blaze", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgposr-kLAtl7PLZTjlH7du6kb-FlvD1DLfYkWNFpsAiiO-Sr9ih2gOx_EA5ammlIYaUIFM8NV_S-AC8w-a6gsLvvM7LnHU37nZ07CqLy0a20AYMMLKFp4kVHA"},
	{Weapon: "USP-S", Skin: "Kill Confirmed", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgpoo6m1FBRp3_bGcjhQ09-jq5WYh8j_OrfdqWhe5sN4mOTE8Ij2xgTgqhJvMW37IYGXdQ5rZArW_1C_wrzqjZPq7J_AnSQ37CA8pSGKLyiD9Ys"},
	{Weapon: "Glock-18", Skin: "Fade", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgposbaqKAxf0Ob3djFN79eJnY6PnvD7DLbUkmJE5YtOhuDG_Jn4xley_kI4NWj6JI-QdlI6YVzY-QO6w-u9hce5vc-cm3swvyEg7XzYmxa0hx1IZLQ-2vmVHA"},
	{Weapon: "Butterfly Knife", Skin: "Fade", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgpovbSsLQJf0ebcZThQ6tCvq4GGqOT1I6vZn3lu5cB1g_zMu4rw0FHi80tpMW3wdYWdd1I7NVHU_APtyO7s0Je87Z3LnXo16HYrt37cnxa00RpJaeNqmqHA-VqGQF5I"},
	{Weapon: "MAC-10", Skin: "Neon Rider", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgpou7umeldf0Ob3fDxBvYyJhIGFmPLxDLbUhFRd4cJ5nqeQ9Nms0AaxrhBsMT-hJI-cdQBsZ1zS8we9w-_o08O-tMnNzCM16yMntyrfzR21gB8acLYx1-uelDJWKQ"},
	{Weapon: "P90", Skin: "Death by Kitty", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgpopuP1FABz7P_ZdjVK_ty1nYGHnvH4DLfYkWNFpsUi2LuU89-h2wft-UY_MmChLNDGIQQ4aA2E-FK-k-nvhMLvvciby3pk6yZz7GGdwUI8aaJIbg"},
	{Weapon: "AK-47", Skin: "Case Hardened", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgpot7HxfDhjxszJemkV086jloKOhcj4OrzZgiUFvpAnj-vE9tr031K18hE-Njz1IYLBI1NoYFjU_la7x7y6hsTq78nAy3Ri6Cc8pSGKFgT0ZA"},
	{Weapon: "AK-47", Skin: "Vulcan", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgpot7HxfDhjxszJemkV09G3h5S0k_LmDLfYkWNFpsUh2LmQ9N7xjlXlrxBtamGhI4KVcAM5ZwqD8wDqxe7t0ZPqucifznN9-n51yJD93w"},
	{Weapon: "M4A4", Skin: "Neo-Noir", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgpou-6kejhz2v_Nfz5H_uOxgrOygfbhNuiBl25u5Mx2gv2P8Yig3wbmqUtvYW6lJoKddg9sZwzU_FDqxru71MO5v5TOnCNquSIl7S2JykWpwUYbl7GsSw"},
	{Weapon: "AWP", Skin: "Gungnir", FallbackURL: "https://community.akamai.steamstatic.com/economy/image/-9a81dlWLwJ2UUGcVs_nsVtzdOEdtWwKGZZLQHTxDZ7I56KU0Zwwo4NUX4oFJZEHLbXH5ApeO4YmlhxYQknCRvCo04DEVlxkKgpot621FAR17PLfYQJD_9W7m5a0mvLwOq7cqWdQ689piOnA9IP4gVbk_xJra2z0dtTBJFNtaAzT8ljox7u8jMO5vpTKnSZhuSEgtH7fyxCxiB9Na7c41_eaEBqJSA"},
}
